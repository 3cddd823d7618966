package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/admin"
	"ms-booking/internal/analytics"
	"ms-booking/internal/booking"
	"ms-booking/internal/catalog"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/utils"
)

type Handler struct {
	AdminService *admin.Service
	Analytics    *analytics.Service
	Catalog      *catalog.Service
	Logger       *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/bookings", h.ListBookings)
		r.Post("/bookings/{bookingId}/approve", h.ApproveBooking)
		r.Post("/bookings/{bookingId}/reject", h.RejectBooking)
		r.Put("/bookings/{bookingId}/status", h.SetBookingStatus)
		r.Get("/metrics", h.GetMetrics)

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", h.ListOffers)
			r.Post("/", h.CreateOffer)
			r.Put("/{offerId}", h.UpdateOffer)
			r.Delete("/{offerId}", h.DeleteOffer)
		})
	})
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var status models.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := models.ParseStatus(raw)
		if !ok {
			utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid filter", "unknown status "+raw))
			return
		}
		status = parsed
	}

	bookings, err := h.AdminService.ListBookings(r.Context(), status, r.URL.Query().Get("destinationId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Bookings retrieved", bookings))
}

func (h *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	bkg, err := h.AdminService.Approve(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking approved", bkg))
}

func (h *Handler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	bkg, err := h.AdminService.Reject(r.Context(), chi.URLParam(r, "bookingId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking rejected", bkg))
}

func (h *Handler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	bkg, err := h.AdminService.SetStatus(r.Context(), chi.URLParam(r, "bookingId"), models.BookingStatus(req.Status))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking status updated", bkg))
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Analytics.DashboardMetrics(r.Context(), time.Now())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Metrics retrieved", metrics))
}

// ---------------- OFFERS ----------------

func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Catalog.ListOffers(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Offers retrieved", offers))
}

func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	if err := h.Catalog.CreateOffer(r.Context(), &offer); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Could not create offer", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Offer created", offer))
}

func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	var offer models.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	offer.ID = chi.URLParam(r, "offerId")

	if err := h.Catalog.UpdateOffer(r.Context(), &offer); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Could not update offer", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Offer updated", offer))
}

func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteOffer(r.Context(), chi.URLParam(r, "offerId")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Offer deleted", nil))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var (
		notFound   *booking.NotFoundError
		transition *booking.IllegalTransitionError
	)

	switch {
	case errors.As(err, &notFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Not found", err.Error()))
	case errors.As(err, &transition):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("Illegal transition", err.Error()))
	default:
		h.Logger.Error("ADMIN", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
	}
}
