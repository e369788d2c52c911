package models

import (
	"testing"
	"time"

	"github.com/margh00b/woodtrack_backend/utils"
)

func TestInvoiceDisplayStatus(t *testing.T) {
	paidAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		paidAt   *time.Time
		noCharge *bool
		want     InvoiceDisplayStatus
	}{
		{"pending", nil, utils.NewFalse(), InvoiceDisplayStatusPending},
		{"noCharge", nil, utils.NewTrue(), InvoiceDisplayStatusNoCharge},
		{"paid", &paidAt, utils.NewFalse(), InvoiceDisplayStatusPaid},
		// paid wins over a lingering no-charge flag
		{"paidAndNoCharge", &paidAt, utils.NewTrue(), InvoiceDisplayStatusPaid},
		{"nilNoCharge", nil, nil, InvoiceDisplayStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			invoice := Invoice{PaidAt: tc.paidAt, NoCharge: tc.noCharge}
			if got := invoice.DisplayStatus(); got != tc.want {
				t.Fatalf("DisplayStatus() = %q, want %q", got, tc.want)
			}
		})
	}
}
