package domain

// Rate is a single currency quotation for one publication date.
// Value is the CZK price of Amount units of the foreign currency
// (low-value currencies are quoted per 100 or 1000 units).
// The pair (Date, CurrencyCode) identifies a rate; rows are never
// mutated or deleted once stored.
type Rate struct {
	Date         string // YYYY-MM-DD
	CurrencyCode string
	Country      string
	CurrencyName string
	Amount       int
	Value        float64
}

// Currency describes a quoted currency as of the latest publication.
type Currency struct {
	CurrencyCode string
	CurrencyName string
	Country      string
	Amount       int
}
