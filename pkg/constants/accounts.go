package constants

type Role string

const (
	RoleUser     Role = "USER"
	RoleProvider Role = "PROVIDER"
)

type ProviderType string

const (
	ProviderTypeIndividual ProviderType = "INDIVIDUAL"
	ProviderTypeCompany    ProviderType = "COMPANY"
)

func (t ProviderType) Valid() bool {
	return t == ProviderTypeIndividual || t == ProviderTypeCompany
}
