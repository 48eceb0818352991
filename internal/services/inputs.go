package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"skill-market.com/skill-market/pkg/constants"
)

// TaskInput is the validated body of a task create or update request.
type TaskInput struct {
	Name              string
	Category          string
	Description       string
	ExpectedStartDate datatypes.Date
	ExpectedHours     int
	HourlyRate        decimal.Decimal
	Currency          constants.Currency
}

type ProgressInput struct {
	Description string
	HoursSpent  decimal.Decimal
}

type OfferInput struct {
	TaskID     string
	HourlyRate decimal.Decimal
	Currency   constants.Currency
}

type SkillInput struct {
	Category   string
	Experience int
	WorkNature string
	HourlyRate decimal.Decimal
	Currency   constants.Currency
}

// AccountInput carries the signup fields shared by users and providers.
type AccountInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	FullName     string
	MobileNumber string
	StreetNumber string
	StreetName   string
	City         string
	State        string
	PostCode     string
}

type ProviderInput struct {
	AccountInput
	ProviderType      constants.ProviderType
	CompanyName       string
	BusinessTaxNumber string
}
