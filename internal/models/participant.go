package models

import "time"

type Participant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	TeamID    *uint     `gorm:"index" json:"team_id,omitempty"`
	Team      *Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
