package model

import (
	"time"

	"github.com/shopspring/decimal"

	"skill-market.com/skill-market/pkg/constants"
)

type Offer struct {
	ID         string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string                `gorm:"size:36;not null;index" json:"taskId"`
	ProviderID string                `gorm:"size:36;not null;index" json:"providerId"`
	HourlyRate decimal.Decimal       `gorm:"type:decimal(12,2);not null" json:"hourlyRate"`
	Currency   constants.Currency    `gorm:"type:varchar(3);not null" json:"currency"`
	Status     constants.OfferStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}
