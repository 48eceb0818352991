package dto

import "github.com/shopspring/decimal"

type TaskRequest struct {
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	ExpectedStartDate string          `json:"expectedStartDate"`
	ExpectedHours     int             `json:"expectedHours"`
	HourlyRate        decimal.Decimal `json:"hourlyRate"`
	Currency          string          `json:"currency"`
}

type ProgressRequest struct {
	Description string          `json:"description"`
	HoursSpent  decimal.Decimal `json:"hoursSpent"`
}

type OfferRequest struct {
	TaskID     string          `json:"taskId"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Currency   string          `json:"currency"`
}

type SkillRequest struct {
	Category   string          `json:"category"`
	Experience int             `json:"experience"`
	WorkNature string          `json:"workNature"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Currency   string          `json:"currency"`
}
