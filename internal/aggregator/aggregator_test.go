package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidewell/guidewell-server/internal/integrations/plaid"
	"github.com/guidewell/guidewell-server/internal/models"
)

func fptr(v float64) *float64 { return &v }

func rawAccount(id, typ, subtype string, balance float64) plaid.RawAccount {
	a := plaid.RawAccount{AccountID: id, Name: id, Type: typ, Subtype: subtype}
	a.Balances.Current = &balance
	return a
}

func TestMapAccountType(t *testing.T) {
	tests := []struct {
		accountType string
		subtype     string
		want        models.AccountType
	}{
		{"depository", "savings", models.AccountTypeSavings},
		{"depository", "checking", models.AccountTypeChecking},
		{"depository", "cd", models.AccountTypeChecking},
		{"credit", "credit card", models.AccountTypeCreditCard},
		{"loan", "student", models.AccountTypeLoan},
		{"investment", "brokerage", models.AccountTypeInvestment},
		{"other", "", models.AccountTypeChecking},
		{"", "", models.AccountTypeChecking},
	}
	for _, tt := range tests {
		t.Run(tt.accountType+"/"+tt.subtype, func(t *testing.T) {
			assert.Equal(t, tt.want, MapAccountType(tt.accountType, tt.subtype))
		})
	}
}

func TestReconcileMergesCreditLiability(t *testing.T) {
	base := []plaid.RawAccount{rawAccount("acc1", "credit", "credit card", 430.25)}
	liabilities := plaid.Liabilities{
		Credit: []plaid.CreditLiability{{
			AccountID:            "acc1",
			APRs:                 plaid.CreditAPRs{PurchaseAPR: fptr(19.99)},
			MinimumPaymentAmount: fptr(35),
		}},
	}

	accounts := Reconcile(base, liabilities)
	require.Len(t, accounts, 1)

	merged := accounts[0]
	assert.Equal(t, models.AccountTypeCreditCard, merged.Type)
	require.NotNil(t, merged.APR)
	assert.Equal(t, 19.99, *merged.APR)
	require.NotNil(t, merged.MinPayment)
	assert.Equal(t, 35.0, *merged.MinPayment)
}

func TestReconcileCreditAPRFallback(t *testing.T) {
	base := []plaid.RawAccount{rawAccount("acc1", "credit", "credit card", 100)}
	liabilities := plaid.Liabilities{
		Credit: []plaid.CreditLiability{{AccountID: "acc1", APR: fptr(24.49)}},
	}

	accounts := Reconcile(base, liabilities)
	require.NotNil(t, accounts[0].APR)
	assert.Equal(t, 24.49, *accounts[0].APR)
}

func TestReconcileStudentLiability(t *testing.T) {
	base := []plaid.RawAccount{rawAccount("loan1", "loan", "student", 12000)}
	liabilities := plaid.Liabilities{
		Student: []plaid.StudentLoanLiability{{
			AccountID:              "loan1",
			InterestRatePercentage: fptr(5.8),
			MinimumPaymentAmount:   fptr(150),
		}},
	}

	accounts := Reconcile(base, liabilities)
	require.Len(t, accounts, 1)
	require.NotNil(t, accounts[0].APR)
	assert.Equal(t, 5.8, *accounts[0].APR)
	require.NotNil(t, accounts[0].MinPayment)
	assert.Equal(t, 150.0, *accounts[0].MinPayment)
}

func TestReconcileDropsUnmatchedLiabilities(t *testing.T) {
	base := []plaid.RawAccount{rawAccount("acc1", "depository", "checking", 500)}
	liabilities := plaid.Liabilities{
		Credit:  []plaid.CreditLiability{{AccountID: "ghost", APRs: plaid.CreditAPRs{PurchaseAPR: fptr(9.99)}}},
		Student: []plaid.StudentLoanLiability{{AccountID: "phantom", InterestRatePercentage: fptr(4.5)}},
	}

	accounts := Reconcile(base, liabilities)
	require.Len(t, accounts, 1, "unmatched liabilities must never create accounts")
	assert.Equal(t, "acc1", accounts[0].ID)
	assert.Nil(t, accounts[0].APR)
	assert.Nil(t, accounts[0].MinPayment)
}

func TestReconcileCoalesceOnPresence(t *testing.T) {
	base := []plaid.RawAccount{rawAccount("acc1", "credit", "credit card", 100)}
	liabilities := plaid.Liabilities{
		Credit: []plaid.CreditLiability{
			{AccountID: "acc1", APRs: plaid.CreditAPRs{PurchaseAPR: fptr(19.99)}, MinimumPaymentAmount: fptr(35)},
			// Later record without values must not erase earlier ones.
			{AccountID: "acc1"},
		},
	}

	accounts := Reconcile(base, liabilities)
	require.NotNil(t, accounts[0].APR)
	assert.Equal(t, 19.99, *accounts[0].APR)
	require.NotNil(t, accounts[0].MinPayment)
	assert.Equal(t, 35.0, *accounts[0].MinPayment)
}

func TestReconcilePreservesBaseOrder(t *testing.T) {
	base := []plaid.RawAccount{
		rawAccount("c", "credit", "credit card", 1),
		rawAccount("a", "depository", "savings", 2),
		rawAccount("b", "loan", "mortgage", 3),
	}

	accounts := Reconcile(base, plaid.Liabilities{})
	require.Len(t, accounts, 3)
	assert.Equal(t, "c", accounts[0].ID)
	assert.Equal(t, "a", accounts[1].ID)
	assert.Equal(t, "b", accounts[2].ID)
}

func TestReconcileNameAndBalanceFallbacks(t *testing.T) {
	noName := plaid.RawAccount{AccountID: "x1", OfficialName: "Premier Checking", Type: "depository", Subtype: "checking"}
	bare := plaid.RawAccount{AccountID: "x2", Type: "loan", Subtype: "auto"}

	accounts := Reconcile([]plaid.RawAccount{noName, bare}, plaid.Liabilities{})

	assert.Equal(t, "Premier Checking", accounts[0].Name)
	assert.Equal(t, 0.0, accounts[0].Balance, "missing current balance becomes 0")
	assert.Equal(t, "loan auto", accounts[1].Name)
}

func TestReconcileEmptyBase(t *testing.T) {
	accounts := Reconcile(nil, plaid.Liabilities{
		Credit: []plaid.CreditLiability{{AccountID: "acc1", APR: fptr(10)}},
	})
	assert.Empty(t, accounts)
}
