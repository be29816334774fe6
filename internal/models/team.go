package models

import "time"

type Team struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Participants []Participant `gorm:"foreignKey:TeamID" json:"participants,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
