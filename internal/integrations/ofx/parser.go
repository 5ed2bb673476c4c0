// Package ofx parses OFX 2.x (XML) statements uploaded for manual account
// import. Only the statement blocks needed to build accounts and transactions
// are read; everything else in the document is ignored.
package ofx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/guidewell/guidewell-server/internal/models"
)

// Statement is one parsed account statement with its transactions.
type Statement struct {
	Account      models.Account
	Transactions []models.Transaction
}

// Parse reads an OFX 2.x document and returns one statement per bank or
// credit card statement block. Documents with no statement blocks are an
// error; individual transactions with unparseable amounts are skipped.
func Parse(data []byte) ([]Statement, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse OFX document: %w", err)
	}

	var statements []Statement
	for _, stmt := range doc.FindElements("//STMTRS") {
		statements = append(statements, parseBankStatement(stmt))
	}
	for _, stmt := range doc.FindElements("//CCSTMTRS") {
		statements = append(statements, parseCardStatement(stmt))
	}

	if len(statements) == 0 {
		return nil, fmt.Errorf("no statement blocks found in OFX document")
	}
	return statements, nil
}

func parseBankStatement(stmt *etree.Element) Statement {
	acctID := elementText(stmt, "BANKACCTFROM/ACCTID")
	acctType := models.AccountTypeChecking
	if strings.EqualFold(elementText(stmt, "BANKACCTFROM/ACCTTYPE"), "SAVINGS") {
		acctType = models.AccountTypeSavings
	}

	account := models.Account{
		ID:      acctID,
		Type:    acctType,
		Name:    statementName(acctType, acctID),
		Balance: ledgerBalance(stmt),
	}
	return Statement{Account: account, Transactions: parseTransactions(stmt, acctID)}
}

func parseCardStatement(stmt *etree.Element) Statement {
	acctID := elementText(stmt, "CCACCTFROM/ACCTID")

	account := models.Account{
		ID:      acctID,
		Type:    models.AccountTypeCreditCard,
		Name:    statementName(models.AccountTypeCreditCard, acctID),
		Balance: ledgerBalance(stmt),
	}
	return Statement{Account: account, Transactions: parseTransactions(stmt, acctID)}
}

func parseTransactions(stmt *etree.Element, acctID string) []models.Transaction {
	var txns []models.Transaction
	for _, trn := range stmt.FindElements(".//STMTTRN") {
		amount, err := strconv.ParseFloat(elementText(trn, "TRNAMT"), 64)
		if err != nil {
			continue
		}
		txns = append(txns, models.Transaction{
			AccountID:  acctID,
			ExternalID: elementText(trn, "FITID"),
			Amount:     amount,
			Date:       parseOFXDate(elementText(trn, "DTPOSTED")),
			Name:       elementText(trn, "NAME"),
		})
	}
	return txns
}

func ledgerBalance(stmt *etree.Element) float64 {
	bal, err := strconv.ParseFloat(elementText(stmt, "LEDGERBAL/BALAMT"), 64)
	if err != nil {
		return 0
	}
	return bal
}

// parseOFXDate extracts YYYY-MM-DD from an OFX timestamp such as
// 20240131120000[-5:EST].
func parseOFXDate(raw string) string {
	if len(raw) < 8 {
		return ""
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
}

func statementName(t models.AccountType, acctID string) string {
	suffix := acctID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	switch t {
	case models.AccountTypeSavings:
		return "Imported Savings " + suffix
	case models.AccountTypeCreditCard:
		return "Imported Credit Card " + suffix
	default:
		return "Imported Checking " + suffix
	}
}

func elementText(parent *etree.Element, path string) string {
	el := parent.FindElement(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
