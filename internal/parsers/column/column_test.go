package column

import (
	"testing"

	"github.com/rumor-ml/bankparse/internal/domain"
	"github.com/rumor-ml/bankparse/internal/parser"
)

func TestParseLines_CreditColumn(t *testing.T) {
	p := Bradesco()
	txns, errs := p.ParseLines([]string{"25/06/2025;SALARIO EMPRESA;;5000,00;8500,00"})

	if len(errs) != 0 {
		t.Fatalf("ParseLines() errors = %v, want none", errs)
	}
	if len(txns) != 1 {
		t.Fatalf("ParseLines() yielded %d transactions, want 1", len(txns))
	}

	txn := txns[0]
	if txn.DateToken() != "25/06/2025" {
		t.Errorf("DateToken() = %q, want %q", txn.DateToken(), "25/06/2025")
	}
	if txn.DescriptionToken() != "SALARIO EMPRESA" {
		t.Errorf("DescriptionToken() = %q, want %q", txn.DescriptionToken(), "SALARIO EMPRESA")
	}
	if txn.AmountToken() != "5000,00" {
		t.Errorf("AmountToken() = %q, want %q", txn.AmountToken(), "5000,00")
	}
	if txn.Hint() != parser.HintCredit {
		t.Errorf("Hint() = %v, want HintCredit", txn.Hint())
	}
	if txn.BalanceToken() != "8500,00" {
		t.Errorf("BalanceToken() = %q, want %q", txn.BalanceToken(), "8500,00")
	}
}

func TestParseLines_DebitColumn(t *testing.T) {
	p := Bradesco()
	txns, errs := p.ParseLines([]string{"24/06/2025;PIX ENVIADO;150,00;;3500,00"})

	if len(errs) != 0 {
		t.Fatalf("ParseLines() errors = %v, want none", errs)
	}
	if len(txns) != 1 {
		t.Fatalf("ParseLines() yielded %d transactions, want 1", len(txns))
	}
	if txns[0].Hint() != parser.HintDebit {
		t.Errorf("Hint() = %v, want HintDebit", txns[0].Hint())
	}
	if txns[0].AmountToken() != "150,00" {
		t.Errorf("AmountToken() = %q, want %q", txns[0].AmountToken(), "150,00")
	}
}

func TestParseLines_AmbiguousColumns(t *testing.T) {
	p := Bradesco()

	tests := []struct {
		name string
		line string
	}{
		{name: "both populated", line: "24/06/2025;ESTORNO;150,00;150,00;3500,00"},
		{name: "neither populated", line: "24/06/2025;SALDO DO DIA;;;3500,00"},
		{name: "zeros count as unpopulated", line: "24/06/2025;SALDO;0,00;0,00;3500,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, errs := p.ParseLines([]string{tt.line})
			if len(txns) != 0 {
				t.Errorf("ParseLines() yielded %d transactions, want 0", len(txns))
			}
			if len(errs) != 1 {
				t.Errorf("ParseLines() recorded %d errors, want 1", len(errs))
			}
		})
	}
}

func TestParseLines_SkipsNonTransactionLines(t *testing.T) {
	p := Bradesco()
	lines := []string{
		"Extrato Bradesco",
		"Data;Histórico;Débito;Crédito;Saldo",
		"",
		"25/06/2025;SALARIO EMPRESA;;5000,00;8500,00",
		"Nome: Fulano de Tal",
	}

	txns, errs := p.ParseLines(lines)
	if len(errs) != 0 {
		t.Fatalf("ParseLines() errors = %v, want none", errs)
	}
	if len(txns) != 1 {
		t.Errorf("ParseLines() yielded %d transactions, want 1", len(txns))
	}
}

func TestParseLines_CaixaCommaLayout(t *testing.T) {
	p := Caixa()
	txns, errs := p.ParseLines([]string{"10/03/2025,COMPRA CARTAO,89,,"})

	if len(errs) != 0 {
		t.Fatalf("ParseLines() errors = %v, want none", errs)
	}
	if len(txns) != 1 {
		t.Fatalf("ParseLines() yielded %d transactions, want 1", len(txns))
	}
	if txns[0].Hint() != parser.HintDebit {
		t.Errorf("Hint() = %v, want HintDebit", txns[0].Hint())
	}
	if p.Variant() != domain.VariantCaixa {
		t.Errorf("Variant() = %q, want %q", p.Variant(), domain.VariantCaixa)
	}
}
