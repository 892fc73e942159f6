// internal/domain/models/submission.go
package models

import "time"

// Phase1Submission is a team's phase-1 pitch. The document _id is the
// team id, so a team can submit at most once.
//
// Once created, everything except YouTubeLink (and UpdatedAt) is locked
// from the participant side. Points, Review, and ReviewedAt are written
// only by the admin scoring workflow and are absent until scored.
type Phase1Submission struct {
	ID                 string `bson:"_id" json:"id"`
	TeamName           string `bson:"team_name" json:"team_name"`
	CollegeName        string `bson:"college_name" json:"college_name"`
	WhatsappNumber     string `bson:"whatsapp_number" json:"whatsapp_number"`
	ProductDescription string `bson:"product_description" json:"product_description"`
	Solution           string `bson:"solution" json:"solution"`
	FileURL            string `bson:"file_url" json:"file_url"`
	FilePath           string `bson:"file_path,omitempty" json:"-"`
	YouTubeLink        string `bson:"youtube_link,omitempty" json:"youtube_link,omitempty"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`

	// Admin-only scoring overlay.
	Points     *int       `bson:"points,omitempty" json:"points,omitempty"`
	Review     string     `bson:"review,omitempty" json:"review,omitempty"`
	ReviewedAt *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}

// Scored reports whether the admin workflow has attached points.
func (s *Phase1Submission) Scored() bool {
	return s.Points != nil
}

// Phase2Submission is a team's phase-2 entry. Unlike phase 1 it is
// re-submittable: each write merges onto the prior value, and writes are
// accepted only while the phase-2 deadline has not passed.
type Phase2Submission struct {
	ID              string `bson:"_id" json:"id"`
	ProposalURL     string `bson:"proposal_url,omitempty" json:"proposal_url,omitempty"`
	ProposalPath    string `bson:"proposal_path,omitempty" json:"-"`
	YouTubeVideoURL string `bson:"youtube_video_url,omitempty" json:"youtube_video_url,omitempty"`
	Status          string `bson:"status" json:"status"`

	SubmittedAt time.Time `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
