package dto

type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
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

type ProviderSignupRequest struct {
	SignupRequest
	ProviderType      string `json:"providerType"`
	CompanyName       string `json:"companyName"`
	BusinessTaxNumber string `json:"businessTaxNumber"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
