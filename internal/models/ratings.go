package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamRatings represents one efficiency ratings snapshot for a team on a
// rating date. Snapshots are immutable; later dates supersede earlier ones.
// Every rated field is a pointer so that a NULL from the ingestion job
// surfaces as an incomplete snapshot instead of a silent zero.
type TeamRatings struct {
	ID          uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	TeamName    string    `db:"team_name" json:"team_name" validate:"required"`
	RatingDate  time.Time `db:"rating_date" json:"rating_date" validate:"required"`
	AdjO        *float64  `db:"adj_o" json:"adj_o"`
	AdjD        *float64  `db:"adj_d" json:"adj_d"`
	Tempo       *float64  `db:"tempo" json:"tempo"`
	Rank        *int      `db:"rank" json:"rank"`
	Wins        int       `db:"wins" json:"wins"`
	Losses      int       `db:"losses" json:"losses"`
	EFG         *float64  `db:"efg" json:"efg"`
	EFGD        *float64  `db:"efgd" json:"efgd"`
	TOR         *float64  `db:"tor" json:"tor"`
	TORD        *float64  `db:"tord" json:"tord"`
	ORB         *float64  `db:"orb" json:"orb"`
	DRB         *float64  `db:"drb" json:"drb"`
	FTR         *float64  `db:"ftr" json:"ftr"`
	FTRD        *float64  `db:"ftrd" json:"ftrd"`
	TwoPtPct    *float64  `db:"two_pt_pct" json:"two_pt_pct"`
	TwoPtPctD   *float64  `db:"two_pt_pct_d" json:"two_pt_pct_d"`
	ThreePtPct  *float64  `db:"three_pt_pct" json:"three_pt_pct"`
	ThreePtPctD *float64  `db:"three_pt_pct_d" json:"three_pt_pct_d"`
	ThreePtRate *float64  `db:"three_pt_rate" json:"three_pt_rate"`
	ThreePtRateD *float64 `db:"three_pt_rate_d" json:"three_pt_rate_d"`
	Barthag     *float64  `db:"barthag" json:"barthag"`
	WAB         *float64  `db:"wab" json:"wab"`
}

// MissingFields returns the names of required rated fields that are NULL.
// A snapshot with any missing field cannot be consumed by the scoring model.
func (t *TeamRatings) MissingFields() []string {
	required := []struct {
		name  string
		isSet bool
	}{
		{"adj_o", t.AdjO != nil},
		{"adj_d", t.AdjD != nil},
		{"tempo", t.Tempo != nil},
		{"rank", t.Rank != nil},
		{"efg", t.EFG != nil},
		{"efgd", t.EFGD != nil},
		{"tor", t.TOR != nil},
		{"tord", t.TORD != nil},
		{"orb", t.ORB != nil},
		{"drb", t.DRB != nil},
		{"ftr", t.FTR != nil},
		{"ftrd", t.FTRD != nil},
		{"two_pt_pct", t.TwoPtPct != nil},
		{"two_pt_pct_d", t.TwoPtPctD != nil},
		{"three_pt_pct", t.ThreePtPct != nil},
		{"three_pt_pct_d", t.ThreePtPctD != nil},
		{"three_pt_rate", t.ThreePtRate != nil},
		{"three_pt_rate_d", t.ThreePtRateD != nil},
		{"barthag", t.Barthag != nil},
		{"wab", t.WAB != nil},
	}

	var missing []string
	for _, f := range required {
		if !f.isSet {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// IsComplete reports whether every required rated field is present.
func (t *TeamRatings) IsComplete() bool {
	return len(t.MissingFields()) == 0
}
