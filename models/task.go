package models

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus `gorm:"size:20;not null;default:'pending';index;index:idx_tasks_status_due,priority:1" json:"status"`
	DueDate     *Date      `gorm:"index;index:idx_tasks_status_due,priority:2" json:"due_date"`
	PriorityID  uint       `gorm:"not null;index" json:"priority_id"`
	Priority    Priority   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"priority"`
	Tags        []Tag      `gorm:"many2many:task_tag;" json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TagIDs returns the ids of the loaded tags.
func (t Task) TagIDs() []uint {
	ids := make([]uint, 0, len(t.Tags))
	for _, tag := range t.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}
