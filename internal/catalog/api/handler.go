package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/catalog"
	"ms-booking/internal/logger"
	"ms-booking/internal/utils"
)

type Handler struct {
	Catalog *catalog.Service
	Logger  *logger.Logger
}

// RegisterRoutes mounts the public catalog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/destinations", h.ListDestinations)
	r.Get("/destinations/{destinationId}", h.GetDestination)
	r.Get("/offers", h.ListCurrentOffers)
}

func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := h.Catalog.ListActiveDestinations(r.Context())
	if err != nil {
		h.Logger.Error("CATALOG", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Destinations retrieved", dests))
}

func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	dest, err := h.Catalog.GetDestination(r.Context(), chi.URLParam(r, "destinationId"))
	if err != nil {
		h.Logger.Error("CATALOG", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
		return
	}
	if dest == nil || !dest.IsActive {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Not found", "destination not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Destination retrieved", dest))
}

func (h *Handler) ListCurrentOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Catalog.ListActiveCurrentOffers(r.Context(), time.Now())
	if err != nil {
		h.Logger.Error("CATALOG", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Offers retrieved", offers))
}
