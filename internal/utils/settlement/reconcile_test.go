package settlement_test

import (
	"testing"

	"github.com/erpcore/sales_settlement_app/internal/apperrors"
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/erpcore/sales_settlement_app/internal/utils/settlement"
	"github.com/stretchr/testify/assert"
)

func totalsOf(afterTax string) domain.InvoiceTotals {
	return domain.InvoiceTotals{AfterTax: dec(afterTax)}
}

func TestReconcileSingleMethods(t *testing.T) {
	totals := totalsOf("100.00")

	t.Run("cash requires a cash box reference", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{Method: domain.PaymentCash})
		assert.ErrorIs(t, err, apperrors.ErrMissingCashBox)
	})

	t.Run("cash with cash box passes", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method:     domain.PaymentCash,
			CashBoxRef: "cb-main",
		})
		assert.NoError(t, err)
	})

	t.Run("bank transfer needs no further checks", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{Method: domain.PaymentBank})
		assert.NoError(t, err)
	})

	t.Run("card needs no further checks", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{Method: domain.PaymentCard})
		assert.NoError(t, err)
	})

	t.Run("unknown method is a validation error", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{Method: "CHEQUE"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestReconcileSplits(t *testing.T) {
	totals := totalsOf("100.00")

	split := func(ref, amount string) *domain.PaymentSplit {
		return &domain.PaymentSplit{AccountRef: ref, Amount: dec(amount)}
	}

	t.Run("exact allocation passes", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "60.00"),
			Bank:   split("bank-1", "40.00"),
		})
		assert.NoError(t, err)
	})

	t.Run("one cent short is within tolerance", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "99.99"),
		})
		assert.NoError(t, err)
	})

	t.Run("one cent over is within tolerance", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "100.01"),
		})
		assert.NoError(t, err)
	})

	t.Run("nine tenths of a cent short is within tolerance", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "99.991"),
		})
		assert.NoError(t, err)
	})

	t.Run("eleven tenths of a cent over is a mismatch", func(t *testing.T) {
		// The comparison runs on the exact allocation sum; rounding the sum
		// to cents first would wrongly let this through.
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "100.011"),
		})
		assert.ErrorIs(t, err, apperrors.ErrPaymentMismatch)
	})

	t.Run("two cents short is a mismatch", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "99.98"),
		})
		assert.ErrorIs(t, err, apperrors.ErrPaymentMismatch)
	})

	t.Run("no allocations at all", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{Method: domain.PaymentMultiple})
		assert.ErrorIs(t, err, apperrors.ErrNoPayment)
	})

	t.Run("allocation without account reference", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Bank:   split("", "100.00"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("zero allocation amount", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   split("cb-main", "0"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative allocation amount", func(t *testing.T) {
		err := settlement.Reconcile(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Card:   split("card-1", "-10.00"),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestRemaining(t *testing.T) {
	totals := totalsOf("100.00")

	t.Run("single method counts as settled", func(t *testing.T) {
		remaining, settled := settlement.Remaining(totals, domain.PaymentDetails{
			Method:     domain.PaymentCash,
			CashBoxRef: "cb-main",
		})
		assert.True(t, remaining.IsZero())
		assert.True(t, settled)
	})

	t.Run("partial split leaves a balance", func(t *testing.T) {
		remaining, settled := settlement.Remaining(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   &domain.PaymentSplit{AccountRef: "cb-main", Amount: dec("70.00")},
		})
		assert.True(t, remaining.Equal(dec("30.00")), "remaining: %s", remaining)
		assert.False(t, settled)
	})

	t.Run("within tolerance counts as settled", func(t *testing.T) {
		remaining, settled := settlement.Remaining(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   &domain.PaymentSplit{AccountRef: "cb-main", Amount: dec("99.99")},
		})
		assert.True(t, remaining.Equal(dec("0.01")), "remaining: %s", remaining)
		assert.True(t, settled)
	})

	t.Run("overpayment shows as negative remaining", func(t *testing.T) {
		remaining, settled := settlement.Remaining(totals, domain.PaymentDetails{
			Method: domain.PaymentMultiple,
			Cash:   &domain.PaymentSplit{AccountRef: "cb-main", Amount: dec("110.00")},
		})
		assert.True(t, remaining.Equal(dec("-10.00")), "remaining: %s", remaining)
		assert.False(t, settled)
	})
}
