package model

import "time"

// Status 测评状态
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses 全部合法状态（顺序固定，用于统计输出）
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Assessment 测评表 — 对应 assessments
// score 与 status 之间不做联动约束
type Assessment struct {
	ID           int       `gorm:"primaryKey;autoIncrement"                json:"id"`
	Title        string    `gorm:"type:text;not null"                      json:"title"`
	Status       Status    `gorm:"type:text;not null;default:NOT_STARTED"  json:"status"`
	Score        *int      `gorm:"type:integer"                            json:"score"`
	DateAssigned time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"dateAssigned"`
	BaseModel
}

// TableName 指定表名
func (Assessment) TableName() string { return "assessments" }
