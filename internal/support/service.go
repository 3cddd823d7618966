package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

// Service handles the customer-support inquiry workflow.
type Service struct {
	Store  *Store
	Logger *logger.Logger
}

func NewService(store *Store, log *logger.Logger) *Service {
	return &Service{Store: store, Logger: log}
}

type SubmitInquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit validates and stores a new inquiry in OPEN.
func (s *Service) Submit(ctx context.Context, input SubmitInquiryInput) (*models.Inquiry, error) {
	for field, value := range map[string]string{
		"name":    input.Name,
		"email":   input.Email,
		"subject": input.Subject,
		"message": input.Message,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s is required", field)
		}
	}

	inquiry := &models.Inquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   input.Message,
		Status:    models.InquiryOpen,
		CreatedAt: time.Now(),
	}

	if err := s.Store.CreateInquiry(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	s.Logger.Info("SUPPORT", fmt.Sprintf("Inquiry %s submitted by %s", inquiry.ID, inquiry.Email))
	return inquiry, nil
}

// ListByEmail returns the ticket history for one email address.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]models.Inquiry, error) {
	return s.Store.GetInquiriesByEmail(ctx, strings.TrimSpace(email))
}

// List returns inquiries, optionally filtered by status.
func (s *Service) List(ctx context.Context, status models.InquiryStatus) ([]models.Inquiry, error) {
	if status != "" {
		return s.Store.GetInquiriesByStatus(ctx, status)
	}
	return s.Store.GetAllInquiries(ctx)
}

// Reply records an operator reply and closes the inquiry.
func (s *Service) Reply(ctx context.Context, id, replyMessage string) (*models.Inquiry, error) {
	inquiry, err := s.Store.GetInquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrInquiryNotFound
	}

	now := time.Now()
	inquiry.ReplyMessage = replyMessage
	inquiry.RepliedAt = &now
	inquiry.Status = models.InquiryClosed
	if err := s.Store.UpdateInquiry(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to reply to inquiry: %w", err)
	}
	s.Logger.Info("SUPPORT", fmt.Sprintf("Inquiry %s replied and closed", id))
	return inquiry, nil
}

// Close closes an inquiry without a reply.
func (s *Service) Close(ctx context.Context, id string) (*models.Inquiry, error) {
	inquiry, err := s.Store.GetInquiryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, ErrInquiryNotFound
	}

	inquiry.Status = models.InquiryClosed
	if err := s.Store.UpdateInquiry(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to close inquiry: %w", err)
	}
	return inquiry, nil
}
