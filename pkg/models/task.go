package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"skill-market.com/skill-market/pkg/constants"
)

type Task struct {
	ID                string               `gorm:"primaryKey;size:36" json:"id"`
	Name              string               `gorm:"not null" json:"name"`
	Category          string               `gorm:"not null;index" json:"category"`
	Description       string               `gorm:"not null" json:"description"`
	ExpectedStartDate datatypes.Date       `gorm:"not null" json:"expectedStartDate"`
	ExpectedHours     int                  `gorm:"not null" json:"expectedHours"`
	HourlyRate        decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"hourlyRate"`
	Currency          constants.Currency   `gorm:"type:varchar(3);not null" json:"currency"`
	Status            constants.TaskStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	UserID            string               `gorm:"size:36;not null;index" json:"userId"`
	ProviderID        *string              `gorm:"size:36;index" json:"providerId"`
	CompletedAt       *time.Time           `json:"completedAt"`
	Version           uint                 `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// AssignedTo reports whether providerID is the provider working on the task.
func (t *Task) AssignedTo(providerID string) bool {
	return t.ProviderID != nil && *t.ProviderID == providerID
}

// TaskProgress is an append-only entry logged by the assigned provider.
type TaskProgress struct {
	ID          string                   `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string                   `gorm:"size:36;not null;index" json:"taskId"`
	ProviderID  string                   `gorm:"size:36;not null;index" json:"providerId"`
	Description string                   `gorm:"not null" json:"description"`
	HoursSpent  decimal.Decimal          `gorm:"type:decimal(8,2);not null" json:"hoursSpent"`
	Status      constants.ProgressStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
}
