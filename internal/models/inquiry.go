package models

import (
	"time"

	"github.com/uptrace/bun"
)

type InquiryStatus string

const (
	InquiryOpen   InquiryStatus = "OPEN"
	InquiryClosed InquiryStatus = "CLOSED"
)

type Inquiry struct {
	bun.BaseModel `bun:"table:inquiries"`

	ID           string        `bun:"id,pk" json:"id"`
	Name         string        `bun:"name,notnull" json:"name"`
	Email        string        `bun:"email,notnull" json:"email"`
	Phone        string        `bun:"phone,nullzero" json:"phone,omitempty"`
	Subject      string        `bun:"subject,notnull" json:"subject"`
	Message      string        `bun:"message,notnull" json:"message"`
	Status       InquiryStatus `bun:"status,notnull" json:"status"`
	ReplyMessage string        `bun:"reply_message,nullzero" json:"reply_message,omitempty"`
	RepliedAt    *time.Time    `bun:"replied_at,nullzero" json:"replied_at,omitempty"`
	CreatedAt    time.Time     `bun:"created_at,notnull" json:"created_at"`
}
