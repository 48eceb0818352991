package model

import (
	"time"

	"skill-market.com/skill-market/pkg/constants"
)

// Profile holds the fields shared by users and providers.
type Profile struct {
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostCode     string `json:"postCode"`
}

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	Profile
	Role      constants.Role `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type Provider struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
	Profile
	Role              constants.Role         `gorm:"type:varchar(10);not null" json:"role"`
	ProviderType      constants.ProviderType `gorm:"type:varchar(12);not null" json:"providerType"`
	CompanyName       string                 `json:"companyName,omitempty"`
	BusinessTaxNumber string                 `json:"businessTaxNumber,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}
