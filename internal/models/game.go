package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus represents the lifecycle state of a scheduled game
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusFinal     GameStatus = "final"
)

// Game represents a scheduled NCAA basketball game
type Game struct {
	ID          uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	HomeTeam    string     `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string     `db:"away_team" json:"away_team" validate:"required"`
	Tipoff      time.Time  `db:"tipoff" json:"tipoff" validate:"required"`
	NeutralSite bool       `db:"neutral_site" json:"neutral_site"`
	Status      GameStatus `db:"status" json:"status" validate:"required,oneof=scheduled final"`
	HomeScore   *int       `db:"home_score" json:"home_score"`
	AwayScore   *int       `db:"away_score" json:"away_score"`
	HomeH1Score *int       `db:"home_h1_score" json:"home_h1_score"`
	AwayH1Score *int       `db:"away_h1_score" json:"away_h1_score"`
}

// IsFinal reports whether the game has finished
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// GameDate returns the calendar date of the tipoff in UTC
func (g *Game) GameDate() time.Time {
	y, m, d := g.Tipoff.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
