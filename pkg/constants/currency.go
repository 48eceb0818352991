package constants

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyAUD Currency = "AUD"
	CurrencySGD Currency = "SGD"
	CurrencyINR Currency = "INR"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyAUD, CurrencySGD, CurrencyINR:
		return true
	}
	return false
}
