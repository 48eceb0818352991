package model

import (
	"time"

	"github.com/shopspring/decimal"

	"skill-market.com/skill-market/pkg/constants"
)

type Skill struct {
	ID         string             `gorm:"primaryKey;size:36" json:"id"`
	ProviderID string             `gorm:"size:36;not null;index" json:"providerId"`
	Category   string             `gorm:"not null;index" json:"category"`
	Experience int                `gorm:"not null" json:"experience"`
	WorkNature string             `gorm:"not null" json:"workNature"`
	HourlyRate decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"hourlyRate"`
	Currency   constants.Currency `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}
