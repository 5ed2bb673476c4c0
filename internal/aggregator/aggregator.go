// Package aggregator reconciles raw provider accounts with separately fetched
// liability detail records into the canonical account view. The provider
// category to canonical type mapping lives here and nowhere else.
package aggregator

import (
	"fmt"

	"github.com/guidewell/guidewell-server/internal/integrations/plaid"
	"github.com/guidewell/guidewell-server/internal/models"
)

// MapAccountType maps a provider product category into the canonical five-way
// type. Unrecognized categories default to checking.
func MapAccountType(accountType, subtype string) models.AccountType {
	switch accountType {
	case "depository":
		if subtype == "savings" {
			return models.AccountTypeSavings
		}
		return models.AccountTypeChecking
	case "credit":
		return models.AccountTypeCreditCard
	case "loan":
		return models.AccountTypeLoan
	case "investment":
		return models.AccountTypeInvestment
	default:
		return models.AccountTypeChecking
	}
}

// Reconcile merges the base account list with credit and student liability
// records keyed by account id. Output order matches the base list; liability
// records without a matching base account are dropped, and a field already
// populated by an earlier match is only overwritten when the newer record
// actually supplies a value.
func Reconcile(base []plaid.RawAccount, liabilities plaid.Liabilities) []models.Account {
	accounts := make([]models.Account, len(base))
	index := make(map[string]int, len(base))
	for i, raw := range base {
		accounts[i] = models.Account{
			ID:      raw.AccountID,
			Type:    MapAccountType(raw.Type, raw.Subtype),
			Name:    displayName(raw),
			Balance: currentBalance(raw),
		}
		index[raw.AccountID] = i
	}

	for _, c := range liabilities.Credit {
		i, ok := index[c.AccountID]
		if !ok {
			continue
		}
		coalesce(&accounts[i].APR, creditAPR(c))
		coalesce(&accounts[i].MinPayment, c.MinimumPaymentAmount)
	}
	for _, s := range liabilities.Student {
		i, ok := index[s.AccountID]
		if !ok {
			continue
		}
		coalesce(&accounts[i].APR, s.InterestRatePercentage)
		coalesce(&accounts[i].MinPayment, s.MinimumPaymentAmount)
	}

	return accounts
}

// creditAPR prefers the purchase APR and falls back to the record's generic
// APR field.
func creditAPR(c plaid.CreditLiability) *float64 {
	if c.APRs.PurchaseAPR != nil {
		return c.APRs.PurchaseAPR
	}
	return c.APR
}

// coalesce sets dst from src only when src carries a value.
func coalesce(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func displayName(raw plaid.RawAccount) string {
	if raw.Name != "" {
		return raw.Name
	}
	if raw.OfficialName != "" {
		return raw.OfficialName
	}
	return fmt.Sprintf("%s %s", raw.Type, raw.Subtype)
}

func currentBalance(raw plaid.RawAccount) float64 {
	if raw.Balances.Current != nil {
		return *raw.Balances.Current
	}
	return 0
}
