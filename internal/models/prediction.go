package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction represents one predicted line for a (game, market) within a
// prediction run. Records are append-only: re-running a date writes a new set
// under a fresh run ID, never mutating earlier rows.
type Prediction struct {
	ID           uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	RunID        uuid.UUID  `db:"run_id" json:"run_id" validate:"required,uuid4"`
	GameID       uuid.UUID  `db:"game_id" json:"game_id" validate:"required,uuid4"`
	Market       MarketKind `db:"market" json:"market" validate:"required"`
	Value        float64    `db:"value" json:"value"`
	Confidence   float64    `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	Sigma        float64    `db:"sigma" json:"sigma" validate:"gt=0"`
	ModelVersion string     `db:"model_version" json:"model_version" validate:"required"`
	PredictedAt  time.Time  `db:"predicted_at" json:"predicted_at" validate:"required"`
}
