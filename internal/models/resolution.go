package models

import (
	"time"

	"github.com/google/uuid"
)

// ResolutionAudit represents one team-name lookup attempt recorded by the
// ratings ingestion job. The data quality gate aggregates these to decide
// whether a prediction run may start at all.
type ResolutionAudit struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	RawName    string    `db:"raw_name" json:"raw_name" validate:"required"`
	Resolved   bool      `db:"resolved" json:"resolved"`
	Canonical  *string   `db:"canonical" json:"canonical"`
	Stage      string    `db:"stage" json:"stage"`
	LookedUpAt time.Time `db:"looked_up_at" json:"looked_up_at" validate:"required"`
}
