// Package ofx parses OFX/QFX statement uploads. Unlike the line-oriented
// families, OFX is a structured interchange format, so this parser works on
// the raw bytes and is selected by format, not by institution fingerprint.
package ofx

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/rumor-ml/bankparse/internal/parser"
)

// CanParse checks whether the upload is an OFX/QFX document, by extension
// or by content markers (both v1 SGML and v2 XML headers).
func CanParse(filename string, data []byte) bool {
	ext := strings.ToLower(filename)
	if strings.HasSuffix(ext, ".ofx") || strings.HasSuffix(ext, ".qfx") {
		return true
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	headUpper := strings.ToUpper(string(head))
	return strings.Contains(headUpper, "OFXHEADER") ||
		strings.Contains(headUpper, "<?OFX") ||
		strings.Contains(headUpper, "<OFX>")
}

// Parse extracts raw transactions from an OFX document. A document that
// cannot be parsed at all is a fatal error; individual malformed
// transactions are line-scoped and recorded.
func Parse(ctx context.Context, data []byte) ([]parser.RawTransaction, []parser.LineError, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	response, err := ofxgo.ParseResponse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse OFX document (%d bytes): %w", len(data), err)
	}

	var lists []*ofxgo.TransactionList
	for _, msg := range response.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}
	for _, msg := range response.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			lists = append(lists, stmt.BankTranList)
		}
	}

	if len(lists) == 0 {
		return nil, nil, fmt.Errorf("no bank or credit card statement found in OFX document (bank: %d, creditcard: %d)",
			len(response.Bank), len(response.CreditCard))
	}

	var txns []parser.RawTransaction
	var errs []parser.LineError

	for _, list := range lists {
		for _, txn := range list.Transactions {
			raw, err := extractTransaction(txn)
			if err != nil {
				errs = append(errs, parser.LineError{
					Line:   describeTransaction(txn),
					Reason: err.Error(),
				})
				continue
			}
			txns = append(txns, *raw)
		}
	}

	return txns, errs, nil
}

// extractTransaction converts one STMTTRN record into raw tokens. All
// interpretation of the tokens happens at the normalization boundary, the
// same as for line-parsed formats.
func extractTransaction(txn ofxgo.Transaction) (*parser.RawTransaction, error) {
	// Posted date, falling back to the user-entered date.
	date := txn.DtPosted.Time
	if date.IsZero() {
		date = txn.DtUser.Time
	}
	if date.IsZero() {
		return nil, fmt.Errorf("transaction missing both posted date and user date")
	}

	description := strings.TrimSpace(txn.Name.String())
	if description == "" {
		description = strings.TrimSpace(txn.Memo.String())
	}

	raw, err := parser.NewRawTransaction(
		date.Format("2006-01-02"),
		description,
		txn.TrnAmt.FloatString(2),
		describeTransaction(txn),
	)
	if err != nil {
		return nil, err
	}

	// DEBIT/CREDIT record types are structural, like debit/credit columns,
	// and take precedence over the amount sign downstream.
	switch txn.TrnType {
	case ofxgo.TrnTypeDebit:
		raw.SetHint(parser.HintDebit)
	case ofxgo.TrnTypeCredit:
		raw.SetHint(parser.HintCredit)
	}

	return raw, nil
}

// describeTransaction renders a compact diagnostic stand-in for the source
// line, which OFX records do not have.
func describeTransaction(txn ofxgo.Transaction) string {
	return fmt.Sprintf("STMTTRN %s %s %s", txn.FiTID.String(), txn.DtPosted.Time.Format("2006-01-02"), txn.TrnAmt.FloatString(2))
}
