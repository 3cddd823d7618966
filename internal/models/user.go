package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        string    `bun:"id,pk" json:"id"`
	Username  string    `bun:"username,notnull" json:"username"`
	Email     string    `bun:"email,notnull" json:"email"`
	Role      string    `bun:"role,notnull,default:'USER'" json:"role"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}
