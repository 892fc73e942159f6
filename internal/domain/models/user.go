// internal/domain/models/user.go
package models

import "time"

// User is a participant profile keyed by the identity provider UID.
// Admin and finance principals are resolved from configuration and do
// not need a profile document.
type User struct {
	ID      string `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	College string `bson:"college,omitempty" json:"college,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
