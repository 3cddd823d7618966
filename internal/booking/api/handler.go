package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/auth"
	"ms-booking/internal/booking"
	"ms-booking/internal/logger"
	"ms-booking/internal/utils"
)

type Handler struct {
	BookingService *booking.BookingService
	Logger         *logger.Logger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.CreateBooking)
		r.Get("/", h.ListMyBookings)
		r.Get("/{bookingId}", h.GetBooking)
		r.Post("/{bookingId}/cancel", h.CancelBooking)
		r.Delete("/{bookingId}", h.DeleteBooking)
		r.Put("/{bookingId}/travelers", h.UpdateTravelers)
	})
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input booking.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	bkg, err := h.BookingService.Create(r.Context(), auth.UserIDFromContext(r.Context()), input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Booking created", bkg))
}

func (h *Handler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	list, err := h.BookingService.ListForUser(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Bookings retrieved", list))
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	bkg, err := h.BookingService.Get(r.Context(), bookingID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking retrieved", bkg))
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	bkg, err := h.BookingService.Cancel(r.Context(), bookingID, auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking cancelled", bkg))
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	if err := h.BookingService.Delete(r.Context(), bookingID, auth.UserIDFromContext(r.Context())); err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking deleted", nil))
}

func (h *Handler) UpdateTravelers(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")

	var req struct {
		Travelers int `json:"travelers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	bkg, err := h.BookingService.UpdateTravelers(r.Context(), bookingID, auth.UserIDFromContext(r.Context()), req.Travelers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Booking updated", bkg))
}

// writeServiceError maps the booking error taxonomy onto HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var (
		fieldErrs  booking.ValidationErrors
		notFound   *booking.NotFoundError
		forbidden  *booking.ForbiddenError
		transition *booking.IllegalTransitionError
	)

	switch {
	case errors.As(err, &fieldErrs):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Validation failed",
			Data:    fieldErrs,
			Error:   err.Error(),
		})
	case errors.As(err, &notFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Not found", err.Error()))
	case errors.As(err, &forbidden):
		utils.WriteJSON(w, http.StatusForbidden, utils.ErrorResponse("Forbidden", err.Error()))
	case errors.As(err, &transition):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("Illegal transition", err.Error()))
	default:
		h.Logger.Error("API", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
	}
}
