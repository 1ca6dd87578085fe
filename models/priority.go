package models

import "time"

type PriorityName string

const (
	PriorityLow    PriorityName = "LOW"
	PriorityMedium PriorityName = "MEDIUM"
	PriorityHigh   PriorityName = "HIGH"
)

func PriorityNames() []PriorityName {
	return []PriorityName{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p PriorityName) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Priority struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      PriorityName `gorm:"size:10;not null;index" json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
