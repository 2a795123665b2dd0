// Package model defines the persistent entities and shared value types of the
// admin API.
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin is a back-office administrator account.
// The password hash is never serialized into API responses.
type Admin struct {
	bun.BaseModel `bun:"table:admins" json:"-"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	Password  string    `bun:"password,notnull" json:"-"`
	Image     string    `bun:"image,nullzero" json:"image,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// AdminInput carries the fields accepted when creating or updating an admin.
// Empty fields are ignored on update.
type AdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}
