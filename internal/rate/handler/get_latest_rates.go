package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetLatestRates returns every quotation for the most recent stored
// date, fetching today's publication on demand.
func (h *Handler) GetLatestRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.LatestRates(r.Context())
	if err != nil {
		msg := "ups, couldn't get latest rates this time"
		logrus.WithError(err).WithField("handler", "GetLatestRates").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, toRateResponses(rates))
}
