package models

// AccountType is the canonical five-way account classification. Provider
// product categories are mapped into it by the aggregator; nothing else in
// the system defines its own account taxonomy.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeCreditCard AccountType = "credit_card"
)

// Account is one reconciled financial holding. APR, MinPayment and GoalTarget
// are pointers: absent liability data leaves them nil, which is not the same
// thing as zero.
type Account struct {
	ID         string      `json:"id"`
	Type       AccountType `json:"type"`
	Name       string      `json:"name"`
	Balance    float64     `json:"balance"`
	APR        *float64    `json:"apr,omitempty"`
	MinPayment *float64    `json:"minPayment,omitempty"`
	GoalTarget *float64    `json:"goalTarget,omitempty"`
}

// IsDebt reports whether the account carries a balance owed.
func (a Account) IsDebt() bool {
	return a.Type == AccountTypeLoan || a.Type == AccountTypeCreditCard
}
