package settlement

import (
	"fmt"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the settlement tolerance for split payments: allocations may
// miss the invoice total by at most one cent in either direction.
var Tolerance = decimal.New(1, -2)

// Reconcile validates the payment details against the invoice totals.
// It performs no I/O and never mutates its inputs, so it is cheap enough to
// run on every amount-field keystroke behind a live remaining-balance view.
func Reconcile(totals domain.InvoiceTotals, payment domain.PaymentDetails) error {
	switch payment.Method {
	case domain.PaymentCash:
		if payment.CashBoxRef == "" {
			return apperrors.ErrMissingCashBox
		}
		return nil
	case domain.PaymentBank, domain.PaymentCard:
		return nil
	case domain.PaymentMultiple:
		return reconcileSplits(totals, payment)
	default:
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, payment.Method)
	}
}

func reconcileSplits(totals domain.InvoiceTotals, payment domain.PaymentDetails) error {
	splits := presentSplits(payment)
	if len(splits) == 0 {
		return apperrors.ErrNoPayment
	}

	paid := decimal.Zero
	for name, split := range splits {
		if split.AccountRef == "" {
			return fmt.Errorf("%w: %s allocation has no account reference", apperrors.ErrValidation, name)
		}
		if !split.Amount.IsPositive() {
			return fmt.Errorf("%w: %s allocation amount must be positive", apperrors.ErrValidation, name)
		}
		paid = paid.Add(split.Amount)
	}

	if paid.IsZero() {
		return apperrors.ErrNoPayment
	}
	if paid.Sub(totals.AfterTax).Abs().GreaterThan(Tolerance) {
		return fmt.Errorf("%w: paid %s against total %s", apperrors.ErrPaymentMismatch,
			paid.String(), totals.AfterTax.String())
	}
	return nil
}

// Remaining computes the outstanding balance for display, plus whether the
// invoice counts as settled. The settled check uses the same Tolerance as
// Reconcile so the live indicator and validation never disagree.
// Single-instrument methods settle the full total by definition; only
// MULTIPLE payments can leave a balance outstanding.
func Remaining(totals domain.InvoiceTotals, payment domain.PaymentDetails) (decimal.Decimal, bool) {
	if payment.Method != domain.PaymentMultiple {
		return decimal.Zero, true
	}

	paid := decimal.Zero
	for _, split := range presentSplits(payment) {
		paid = paid.Add(split.Amount)
	}
	remaining := totals.AfterTax.Sub(paid)
	return remaining, remaining.Abs().LessThanOrEqual(Tolerance)
}

func presentSplits(payment domain.PaymentDetails) map[string]*domain.PaymentSplit {
	splits := make(map[string]*domain.PaymentSplit, 3)
	if payment.Cash != nil {
		splits["cash"] = payment.Cash
	}
	if payment.Bank != nil {
		splits["bank"] = payment.Bank
	}
	if payment.Card != nil {
		splits["card"] = payment.Card
	}
	return splits
}
