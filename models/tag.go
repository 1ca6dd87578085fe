package models

import "time"

type TagName string

const (
	TagDev TagName = "DEV"
	TagQA  TagName = "QA"
	TagHR  TagName = "HR"
)

func TagNames() []TagName {
	return []TagName{TagDev, TagQA, TagHR}
}

func (t TagName) IsValid() bool {
	switch t {
	case TagDev, TagQA, TagHR:
		return true
	}
	return false
}

type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      TagName   `gorm:"size:50;not null;index" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
