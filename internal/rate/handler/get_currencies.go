package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Lednacek-Dev/converter/internal/domain"
)

type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	CurrencyName string `json:"currencyName"`
	Country      string `json:"country"`
	Amount       int    `json:"amount"`
}

// GetCurrencies lists the currencies quoted on the latest stored date.
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.service.Currencies(r.Context())
	if err != nil {
		msg := "ups, couldn't get currencies this time"
		logrus.WithError(err).WithField("handler", "GetCurrencies").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toCurrencyResponses(currencies))
}

func toCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		res = append(res, CurrencyResponse{
			CurrencyCode: c.CurrencyCode,
			CurrencyName: c.CurrencyName,
			Country:      c.Country,
			Amount:       c.Amount,
		})
	}
	return res
}
