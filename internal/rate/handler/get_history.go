package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Lednacek-Dev/converter/internal/rate"
)

// GetHistory returns one currency's quotations over the requested
// window, optionally aggregated by week. Validation happens here; the
// service below trusts its inputs.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	if err := rate.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	days, err := rate.ParseDays(r.URL.Query().Get("days"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	aggregate, err := rate.ParseAggregate(r.URL.Query().Get("aggregate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.service.History(r.Context(), code, days, aggregate)
	if err != nil {
		msg := "ups, couldn't get currency history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "code": code}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	if len(history) == 0 {
		writeError(w, http.StatusNotFound, "currency not found")
		return
	}

	writeJSON(w, http.StatusOK, toRateResponses(history))
}
