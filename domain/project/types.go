// Package project defines the persisted record of a completed pipeline run.
package project

import (
	"time"

	"ecodesign/domain/core"
	"ecodesign/domain/design"
)

// Enhancements carries the optional ML outputs attached to a pipeline run.
// Either field may be nil when the corresponding model was unavailable.
type Enhancements struct {
	Rankings       []design.RankingEntry  `json:"ml_rankings,omitempty"`
	Recommendation *design.Recommendation `json:"recommendations,omitempty"`
}

// Record is a completed pipeline result keyed by an opaque project ID.
// The core produces it; storage is the repository's concern.
type Record struct {
	ID          core.ProjectID     `json:"project_id"`
	Constraints design.Constraints `json:"constraints"`
	Designs     []design.Design    `json:"designs"`
	ML          *Enhancements      `json:"ml,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}
