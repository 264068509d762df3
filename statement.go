package ledgergo

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Statement renders a PDF account statement to w: a header with the
// account's standing as of the current simulated date, then one row
// per logged transaction touching the account, in log order.
func (b *Bank) Statement(w io.Writer, accountID AccountID) error {
	acct, err := b.Account(accountID)
	if err != nil {
		return err
	}
	owner, err := b.Client(acct.OwnerID())
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, b.name+" account statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Account: " + acct.ID().String(),
		"Holder: " + owner.Name() + " " + owner.Surname(),
		"Type: " + accountVariant(acct),
		"Balance: " + acct.Balance().String(),
		"Date: " + b.clock.Now().Format("2006-01-02"),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Transaction", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Kind", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, txn := range b.transactions {
		amount, touches := statementAmount(txn, accountID)
		if !touches {
			continue
		}
		pdf.CellFormat(60, 8, txn.ID().String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, txn.Kind(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, amount, "1", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering statement: %w", err)
	}
	return nil
}

func accountVariant(acct Account) string {
	switch acct.(type) {
	case *DebitAccount:
		return "debit"
	case *CreditAccount:
		return "credit"
	case *DepositAccount:
		return "deposit"
	}
	return "unknown"
}

// statementAmount signs the amount from the statement account's point
// of view. A transfer the account only sent shows negative.
func statementAmount(txn Transaction, id AccountID) (string, bool) {
	incoming := txn.To().ID() == id
	outgoing := txn.From().ID() == id
	switch {
	case txn.Kind() == KindTopUp && incoming:
		return txn.Amount().String(), true
	case txn.Kind() == KindWithdraw && outgoing:
		return txn.Amount().Neg().String(), true
	case txn.Kind() == KindTransfer && incoming:
		return txn.Amount().String(), true
	case txn.Kind() == KindTransfer && outgoing:
		return txn.Amount().Neg().String(), true
	}
	return "", false
}
