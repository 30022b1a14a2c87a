package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rumor-ml/bankparse/internal/domain"
)

const bradescoStatement = `Bradesco Internet Banking - Extrato
Data;Historico;Debito;Credito;Saldo
25/06/2025;SALARIO EMPRESA;;5000,00;8500,00
26/06/2025;PAGAMENTO CARTAO;150,75;;8349,25
26/06/2025;COMPRA SUPERMERCADO;89,90;;8259,35
`

const nubankStatement = `Nubank - Nu Pagamentos S.A.
2025-06-24,transport,Uber,-25.50
2025-06-24,income,Pix recebido,380.00
`

const ofxStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250630120000
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>0260
<ACCTID>12345
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601
<DTEND>20250630
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250625
<TRNAMT>5000.00
<FITID>abc1
<NAME>SALARIO EMPRESA
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250626
<TRNAMT>-150.75
<FITID>abc2
<MEMO>PAGAMENTO CARTAO
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>8500.00
<DTASOF>20250630
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestParseStatement_ColumnStatement(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte(bradescoStatement), "extrato.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if !result.Success {
		t.Fatalf("Success = false, errors = %v", result.Errors)
	}
	if result.Variant != domain.VariantBradesco {
		t.Errorf("Variant = %v, want %v", result.Variant, domain.VariantBradesco)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(result.Transactions))
	}

	salary := result.Transactions[0]
	if salary.Kind != domain.KindIncome {
		t.Errorf("credit column transaction Kind = %v, want %v", salary.Kind, domain.KindIncome)
	}
	if !salary.Amount.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("Amount = %s, want 5000", salary.Amount)
	}
	if want := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC); !salary.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", salary.Date, want)
	}
	if balance, ok := salary.BalanceAfter(); !ok || !balance.Equal(decimal.RequireFromString("8500")) {
		t.Errorf("BalanceAfter() = %s, %v, want 8500, true", balance, ok)
	}

	card := result.Transactions[1]
	if card.Kind != domain.KindExpense {
		t.Errorf("debit column transaction Kind = %v, want %v", card.Kind, domain.KindExpense)
	}

	if !result.Summary.Income.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("Summary.Income = %s, want 5000", result.Summary.Income)
	}
	if !result.Summary.Expenses.Equal(decimal.RequireFromString("240.65")) {
		t.Errorf("Summary.Expenses = %s, want 240.65", result.Summary.Expenses)
	}
	if !result.Summary.Balance.Equal(decimal.RequireFromString("4759.35")) {
		t.Errorf("Summary.Balance = %s, want 4759.35", result.Summary.Balance)
	}
}

func TestParseStatement_PatternStatement(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte(nubankStatement), "nubank.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if result.Variant != domain.VariantNubank {
		t.Errorf("Variant = %v, want %v", result.Variant, domain.VariantNubank)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2 (errors: %v)", len(result.Transactions), result.Errors)
	}

	uber := result.Transactions[0]
	if uber.Kind != domain.KindExpense {
		t.Errorf("negative amount Kind = %v, want %v", uber.Kind, domain.KindExpense)
	}
	if !uber.Amount.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("Amount = %s, want positive magnitude 25.5", uber.Amount)
	}
	if uber.CategoryHint() != "transport" {
		t.Errorf("CategoryHint() = %q, want %q", uber.CategoryHint(), "transport")
	}

	pix := result.Transactions[1]
	if pix.Kind != domain.KindIncome {
		t.Errorf("positive amount Kind = %v, want %v", pix.Kind, domain.KindIncome)
	}
}

func TestParseStatement_OFX(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte(ofxStatement), "extrato.ofx")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if result.Variant != domain.VariantOFX {
		t.Errorf("Variant = %v, want %v", result.Variant, domain.VariantOFX)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2 (errors: %v)", len(result.Transactions), result.Errors)
	}
	if result.Transactions[0].Kind != domain.KindIncome {
		t.Errorf("CREDIT record Kind = %v, want %v", result.Transactions[0].Kind, domain.KindIncome)
	}
	if result.Transactions[1].Kind != domain.KindExpense {
		t.Errorf("DEBIT record Kind = %v, want %v", result.Transactions[1].Kind, domain.KindExpense)
	}
}

func TestParseStatement_MalformedOFX(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte("garbage"), "extrato.ofx")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if result.Success {
		t.Error("Success = true for malformed OFX, want false")
	}
	if len(result.Errors) == 0 {
		t.Error("Errors is empty, want the fatal parse error")
	}
	if len(result.Transactions) != 0 {
		t.Errorf("got %d transactions from failed parse, want 0", len(result.Transactions))
	}
}

func TestParseStatement_UnreadablePDF(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte("not a pdf"), "extrato.pdf")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if result.Success {
		t.Error("Success = true for unreadable PDF, want false")
	}
	if len(result.Errors) == 0 {
		t.Error("Errors is empty, want the extraction failure")
	}
}

func TestParseStatement_UnparseableDateIsLineScoped(t *testing.T) {
	p := newPipeline(t)

	statement := bradescoStatement + "31/02/2025;COMPRA FANTASMA;10,00;;8249,35\n"
	result, err := p.ParseStatement(context.Background(), []byte(statement), "extrato.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if !result.Success {
		t.Fatal("Success = false, want line-scoped failure only")
	}
	if len(result.Transactions) != 3 {
		t.Errorf("got %d transactions, want 3", len(result.Transactions))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "COMPRA FANTASMA") {
		t.Errorf("error %q does not reference the failing line", result.Errors[0])
	}
	// The bad date must never silently become some other date.
	for _, txn := range result.Transactions {
		if txn.Description == "COMPRA FANTASMA" {
			t.Error("transaction with unparseable date was kept")
		}
	}
}

func TestParseStatement_NoTransactionsWarning(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte("Extrato Bradesco\nnenhum lancamento no periodo\n"), "extrato.txt")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(result.Warnings), result.Warnings)
	}
}

func TestParseStatement_EmptyFileNoWarning(t *testing.T) {
	p := newPipeline(t)

	result, err := p.ParseStatement(context.Background(), []byte(""), "extrato.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("got warnings %v for empty file, want none", result.Warnings)
	}
	if result.Variant != domain.VariantGeneric {
		t.Errorf("Variant = %v, want %v", result.Variant, domain.VariantGeneric)
	}
}

func TestParseStatement_ContextCancelled(t *testing.T) {
	p := newPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ParseStatement(ctx, []byte(bradescoStatement), "extrato.csv")
	if err != context.Canceled {
		t.Errorf("ParseStatement() error = %v, want context.Canceled", err)
	}
}

func TestParseStatement_Idempotent(t *testing.T) {
	p := newPipeline(t)

	first, err := p.ParseStatement(context.Background(), []byte(bradescoStatement), "extrato.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	second, err := p.ParseStatement(context.Background(), []byte(bradescoStatement), "extrato.csv")
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("transaction counts differ: %d vs %d", len(first.Transactions), len(second.Transactions))
	}
	if !first.Summary.Balance.Equal(second.Summary.Balance) {
		t.Errorf("balances differ: %s vs %s", first.Summary.Balance, second.Summary.Balance)
	}
}
