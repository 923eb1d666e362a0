package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Lednacek-Dev/converter/internal/domain"
)

// RateService is the query surface the HTTP layer consumes.
type RateService interface {
	LatestRates(ctx context.Context) ([]domain.Rate, error)
	Currencies(ctx context.Context) ([]domain.Currency, error)
	History(ctx context.Context, code string, days int, aggregate string) ([]domain.Rate, error)
}

type Handler struct {
	service RateService
}

func NewRateHandler(service RateService) *Handler {
	return &Handler{service: service}
}

// RateResponse mirrors one stored quotation on the wire.
type RateResponse struct {
	Date         string  `json:"date"`
	CurrencyCode string  `json:"currencyCode"`
	Country      string  `json:"country"`
	CurrencyName string  `json:"currencyName"`
	Amount       int     `json:"amount"`
	Rate         float64 `json:"rate"`
}

func toRateResponses(rates []domain.Rate) []RateResponse {
	res := make([]RateResponse, 0, len(rates))
	for _, rt := range rates {
		res = append(res, RateResponse{
			Date:         rt.Date,
			CurrencyCode: rt.CurrencyCode,
			Country:      rt.Country,
			CurrencyName: rt.CurrencyName,
			Amount:       rt.Amount,
			Rate:         rt.Value,
		})
	}
	return res
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
