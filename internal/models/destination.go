package models

import "github.com/uptrace/bun"

type Destination struct {
	bun.BaseModel `bun:"table:destinations"`

	ID          string  `bun:"id,pk" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	Description string  `bun:"description,nullzero" json:"description,omitempty"`
	ImageURL    string  `bun:"image_url,nullzero" json:"image_url,omitempty"`
	Region      string  `bun:"region,nullzero" json:"region,omitempty"`
	Price       float64 `bun:"price,notnull" json:"price"`
	Rating      float64 `bun:"rating,nullzero" json:"rating,omitempty"`
	ReviewCount int     `bun:"review_count,nullzero" json:"review_count,omitempty"`
	Badge       string  `bun:"badge,nullzero" json:"badge,omitempty"`
	IsActive    bool    `bun:"is_active,notnull,default:true" json:"is_active"`
}
