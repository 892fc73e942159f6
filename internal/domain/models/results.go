// internal/domain/models/results.go
package models

import "time"

// ResultsConfigID is the _id of the singleton results document in the
// config collection.
const ResultsConfigID = "results"

// ResultsConfig is the process-wide latch that makes scores and ranks
// visible to participants. Publishing is one-way in normal operation;
// there is no unpublish write.
type ResultsConfig struct {
	ID          string     `bson:"_id" json:"-"`
	Published   bool       `bson:"published" json:"published"`
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
}
