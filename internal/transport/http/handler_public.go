package httptransport

import (
	"errors"
	"net/http"

	apppublic "street-hoops/internal/app/public"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	svc *apppublic.Service
}

func NewPublicHandlers(svc *apppublic.Service) *PublicHandlers {
	return &PublicHandlers{svc: svc}
}

func (h *PublicHandlers) Rooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricPublicQueryTotal.Add(1)
		resp, err := h.svc.Rooms(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricPublicQueryTotal.Add(1)
		resp, err := h.svc.Stats(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) Matches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricPublicQueryTotal.Add(1)
		limit, offset := ParsePagination(r)
		resp, err := h.svc.Matches(r.Context(), limit, offset)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func (h *PublicHandlers) Match() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricPublicQueryTotal.Add(1)
		resp, err := h.svc.Match(r.Context(), chi.URLParam(r, "match_id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, resp)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	metricPublicQueryErrors.Add(1)
	switch {
	case errors.Is(err, apppublic.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, apppublic.ErrMatchNotFound):
		WriteHTTPError(w, http.StatusNotFound, "match_not_found")
	case errors.Is(err, apppublic.ErrStoreUnavailable):
		WriteHTTPError(w, http.StatusServiceUnavailable, "history_unavailable")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
