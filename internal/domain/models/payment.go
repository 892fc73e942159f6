// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one record in the append-only payments log. Records are
// written by the external payment collaborator's webhook and are never
// mutated here; the identity resolver only reads them as a fallback
// signal when the team document does not already say "paid".
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Status    string             `bson:"status" json:"status"` // pending | paid | cancelled
	Reference string             `bson:"reference" json:"reference"`
	Amount    string             `bson:"amount,omitempty" json:"amount,omitempty"`
	Provider  string             `bson:"provider,omitempty" json:"provider,omitempty"`

	RecordedAt time.Time `bson:"recorded_at" json:"recorded_at"`
}
