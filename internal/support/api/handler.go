package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/support"
	"ms-booking/internal/utils"
)

type Handler struct {
	SupportService *support.Service
	Logger         *logger.Logger
}

// RegisterPublicRoutes mounts the customer-facing inquiry endpoints.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Route("/support/inquiries", func(r chi.Router) {
		r.Post("/", h.SubmitInquiry)
		r.Get("/", h.ListMyInquiries)
	})
}

// RegisterAdminRoutes mounts the operator inquiry endpoints.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/admin/inquiries", func(r chi.Router) {
		r.Get("/", h.ListInquiries)
		r.Post("/{inquiryId}/reply", h.ReplyInquiry)
		r.Post("/{inquiryId}/close", h.CloseInquiry)
	})
}

func (h *Handler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var input support.SubmitInquiryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	inquiry, err := h.SupportService.Submit(r.Context(), input)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Could not submit inquiry", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Inquiry submitted", inquiry))
}

func (h *Handler) ListMyInquiries(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Missing filter", "email query parameter is required"))
		return
	}

	inquiries, err := h.SupportService.ListByEmail(r.Context(), email)
	if err != nil {
		h.Logger.Error("SUPPORT", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Inquiries retrieved", inquiries))
}

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.SupportService.List(r.Context(), models.InquiryStatus(r.URL.Query().Get("status")))
	if err != nil {
		h.Logger.Error("SUPPORT", err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Inquiries retrieved", inquiries))
}

func (h *Handler) ReplyInquiry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReplyMessage string `json:"reply_message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	inquiry, err := h.SupportService.Reply(r.Context(), chi.URLParam(r, "inquiryId"), req.ReplyMessage)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Reply sent", inquiry))
}

func (h *Handler) CloseInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.SupportService.Close(r.Context(), chi.URLParam(r, "inquiryId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Inquiry closed", inquiry))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, support.ErrInquiryNotFound) {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Not found", err.Error()))
		return
	}
	h.Logger.Error("SUPPORT", err.Error())
	utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Internal error", "unexpected error"))
}
