package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"

	_ "github.com/Lednacek-Dev/converter/docs"
	"github.com/Lednacek-Dev/converter/internal/rate/handler"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/rates/currencies", rateHandler.GetCurrencies)
	router.Get("/api/v1/rates/latest", rateHandler.GetLatestRates)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}/history", rateHandler.GetHistory)
	return router
}
