package plaid

// RawAccount is a provider account exactly as returned by the accounts
// endpoint, before type mapping and liability reconciliation.
type RawAccount struct {
	AccountID    string      `json:"account_id"`
	Name         string      `json:"name"`
	OfficialName string      `json:"official_name"`
	Type         string      `json:"type"`
	Subtype      string      `json:"subtype"`
	Balances     RawBalances `json:"balances"`
}

// RawBalances carries the provider's balance block. Current is a pointer:
// the provider omits it for some products.
type RawBalances struct {
	Available *float64 `json:"available"`
	Current   *float64 `json:"current"`
	Limit     *float64 `json:"limit"`
}

// CreditAPRs is the APR block attached to a credit liability record.
type CreditAPRs struct {
	PurchaseAPR *float64 `json:"purchase_apr"`
}

// CreditLiability is supplementary detail for a credit-type account.
type CreditLiability struct {
	AccountID            string     `json:"account_id"`
	APRs                 CreditAPRs `json:"aprs"`
	APR                  *float64   `json:"apr"`
	MinimumPaymentAmount *float64   `json:"minimum_payment_amount"`
}

// StudentLoanLiability is supplementary detail for a student or other
// loan-type account.
type StudentLoanLiability struct {
	AccountID              string   `json:"account_id"`
	InterestRatePercentage *float64 `json:"interest_rate_percentage"`
	MinimumPaymentAmount   *float64 `json:"minimum_payment_amount"`
}

// Liabilities groups the two independently fetched liability record sets.
type Liabilities struct {
	Credit  []CreditLiability      `json:"credit"`
	Student []StudentLoanLiability `json:"student"`
}

// AccountData is the paired result of the concurrent accounts + liabilities
// fetch feeding the aggregator.
type AccountData struct {
	Accounts    []RawAccount
	Liabilities Liabilities
}
