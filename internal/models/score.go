package models

import "time"

// Score is one judge's rubric for one team, upserted wholesale on
// resubmission.
type Score struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TeamID       uint      `gorm:"not null;uniqueIndex:idx_team_judge" json:"team_id"`
	JudgeID      uint      `gorm:"not null;uniqueIndex:idx_team_judge" json:"judge_id"`
	Innovation   int       `gorm:"not null" json:"innovation"`
	Execution    int       `gorm:"not null" json:"execution"`
	Design       int       `gorm:"not null" json:"design"`
	Presentation int       `gorm:"not null" json:"presentation"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s Score) Total() int {
	return s.Innovation + s.Execution + s.Design + s.Presentation
}
