package support

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

type Store struct {
	Bun *bun.DB
}

func (s *Store) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	_, err := s.Bun.NewInsert().Model(inquiry).Exec(ctx)
	return err
}

func (s *Store) GetInquiryByID(ctx context.Context, id string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.Bun.NewSelect().
		Model(&inquiry).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (s *Store) UpdateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	_, err := s.Bun.NewUpdate().
		Model(inquiry).
		Column("status", "reply_message", "replied_at").
		Where("id = ?", inquiry.ID).
		Exec(ctx)
	return err
}

func (s *Store) GetInquiriesByEmail(ctx context.Context, email string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.Bun.NewSelect().
		Model(&inquiries).
		Where("email = ?", email).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *Store) GetInquiriesByStatus(ctx context.Context, status models.InquiryStatus) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.Bun.NewSelect().
		Model(&inquiries).
		Where("status = ?", status).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *Store) GetAllInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.Bun.NewSelect().
		Model(&inquiries).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}
