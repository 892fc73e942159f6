// internal/domain/models/team.go
package models

import "time"

// Payment status values used on Team and Payment records.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Team is the unit of registration. The document _id is the identity
// provider UID of the registering participant, so one account owns at
// most one team.
//
// paymentStatus is monotonic: once "paid" it is never reverted by this
// application (the teams store refuses downgrades).
type Team struct {
	ID             string   `bson:"_id" json:"id"`
	TeamName       string   `bson:"team_name" json:"team_name"`
	RegistrationID string   `bson:"registration_id" json:"registration_id"`
	CollegeName    string   `bson:"college_name,omitempty" json:"college_name,omitempty"`
	Members        []Member `bson:"members" json:"members"`
	PaymentStatus  string   `bson:"payment_status" json:"payment_status"` // pending | paid
	Phase2Selected bool     `bson:"phase2_selected" json:"phase2_selected"`
	IsRegionalTeam bool     `bson:"is_regional_team" json:"is_regional_team"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Member is one person on a team. Members have no independent identity;
// their lifecycle is bound to the owning Team. Index 0 is the team lead.
type Member struct {
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	Phone      string `bson:"phone" json:"phone"`
	RollNumber string `bson:"roll_number,omitempty" json:"roll_number,omitempty"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
	Year       string `bson:"year,omitempty" json:"year,omitempty"`
}

// Lead returns the team lead (member 0) and whether one exists.
func (t *Team) Lead() (Member, bool) {
	if len(t.Members) == 0 {
		return Member{}, false
	}
	return t.Members[0], true
}

// IsPaid reports whether the team itself carries a paid status.
func (t *Team) IsPaid() bool {
	return t.PaymentStatus == PaymentPaid
}
