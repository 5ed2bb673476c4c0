package ofx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidewell/guidewell-server/internal/models"
)

const bankStatement = `<?xml version="1.0" encoding="UTF-8"?>
<OFX>
  <BANKMSGSRSV1>
    <STMTTRNRS>
      <STMTRS>
        <CURDEF>USD</CURDEF>
        <BANKACCTFROM>
          <BANKID>021000021</BANKID>
          <ACCTID>1234567890</ACCTID>
          <ACCTTYPE>SAVINGS</ACCTTYPE>
        </BANKACCTFROM>
        <BANKTRANLIST>
          <STMTTRN>
            <TRNTYPE>CREDIT</TRNTYPE>
            <DTPOSTED>20240115120000[-5:EST]</DTPOSTED>
            <TRNAMT>250.00</TRNAMT>
            <FITID>txn-001</FITID>
            <NAME>Direct Deposit</NAME>
          </STMTTRN>
          <STMTTRN>
            <TRNTYPE>DEBIT</TRNTYPE>
            <DTPOSTED>20240116</DTPOSTED>
            <TRNAMT>-42.17</TRNAMT>
            <FITID>txn-002</FITID>
            <NAME>Grocery Store</NAME>
          </STMTTRN>
        </BANKTRANLIST>
        <LEDGERBAL>
          <BALAMT>5120.33</BALAMT>
          <DTASOF>20240131</DTASOF>
        </LEDGERBAL>
      </STMTRS>
    </STMTTRNRS>
  </BANKMSGSRSV1>
</OFX>`

const cardStatement = `<?xml version="1.0" encoding="UTF-8"?>
<OFX>
  <CREDITCARDMSGSRSV1>
    <CCSTMTTRNRS>
      <CCSTMTRS>
        <CURDEF>USD</CURDEF>
        <CCACCTFROM>
          <ACCTID>4111222233334444</ACCTID>
        </CCACCTFROM>
        <BANKTRANLIST>
          <STMTTRN>
            <TRNTYPE>DEBIT</TRNTYPE>
            <DTPOSTED>20240120</DTPOSTED>
            <TRNAMT>-89.99</TRNAMT>
            <FITID>cc-001</FITID>
            <NAME>Streaming Service</NAME>
          </STMTTRN>
        </BANKTRANLIST>
        <LEDGERBAL>
          <BALAMT>-430.25</BALAMT>
          <DTASOF>20240131</DTASOF>
        </LEDGERBAL>
      </CCSTMTRS>
    </CCSTMTTRNRS>
  </CREDITCARDMSGSRSV1>
</OFX>`

func TestParseBankStatement(t *testing.T) {
	statements, err := Parse([]byte(bankStatement))
	require.NoError(t, err)
	require.Len(t, statements, 1)

	account := statements[0].Account
	assert.Equal(t, "1234567890", account.ID)
	assert.Equal(t, models.AccountTypeSavings, account.Type)
	assert.Equal(t, "Imported Savings 7890", account.Name)
	assert.Equal(t, 5120.33, account.Balance)

	txns := statements[0].Transactions
	require.Len(t, txns, 2)
	assert.Equal(t, "txn-001", txns[0].ExternalID)
	assert.Equal(t, 250.00, txns[0].Amount)
	assert.Equal(t, "2024-01-15", txns[0].Date)
	assert.Equal(t, "Direct Deposit", txns[0].Name)
	assert.Equal(t, "1234567890", txns[0].AccountID)
	assert.Equal(t, -42.17, txns[1].Amount)
	assert.Equal(t, "2024-01-16", txns[1].Date)
}

func TestParseCardStatement(t *testing.T) {
	statements, err := Parse([]byte(cardStatement))
	require.NoError(t, err)
	require.Len(t, statements, 1)

	account := statements[0].Account
	assert.Equal(t, models.AccountTypeCreditCard, account.Type)
	assert.Equal(t, "Imported Credit Card 4444", account.Name)
	assert.Equal(t, -430.25, account.Balance)

	require.Len(t, statements[0].Transactions, 1)
	assert.Equal(t, "cc-001", statements[0].Transactions[0].ExternalID)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse([]byte(`<?xml version="1.0"?><OFX></OFX>`))
	assert.Error(t, err)

	_, err = Parse([]byte("not xml at all <<<"))
	assert.Error(t, err)
}

func TestParseSkipsMalformedTransactions(t *testing.T) {
	doc := `<?xml version="1.0"?>
<OFX><BANKMSGSRSV1><STMTTRNRS><STMTRS>
  <BANKACCTFROM><ACCTID>99</ACCTID><ACCTTYPE>CHECKING</ACCTTYPE></BANKACCTFROM>
  <BANKTRANLIST>
    <STMTTRN><DTPOSTED>20240101</DTPOSTED><TRNAMT>oops</TRNAMT><FITID>bad</FITID><NAME>Broken</NAME></STMTTRN>
    <STMTTRN><DTPOSTED>20240102</DTPOSTED><TRNAMT>10.00</TRNAMT><FITID>ok</FITID><NAME>Fine</NAME></STMTTRN>
  </BANKTRANLIST>
  <LEDGERBAL><BALAMT>100.00</BALAMT></LEDGERBAL>
</STMTRS></STMTTRNRS></BANKMSGSRSV1></OFX>`

	statements, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, models.AccountTypeChecking, statements[0].Account.Type)
	require.Len(t, statements[0].Transactions, 1)
	assert.Equal(t, "ok", statements[0].Transactions[0].ExternalID)
}
