package models

import (
	"context"
	"errors"
	"time"

	"github.com/margh00b/woodtrack_backend/config"
	"github.com/margh00b/woodtrack_backend/utils"
	"github.com/shopspring/decimal"
)

// Invoice: paid_at != null and no_charge = true are both terminal states.
// The display status is derived per consumer, never stored.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	JobId         int             `gorm:"index;not null" json:"job_id" binding:"required"`
	InvoiceNumber string          `gorm:"size:50;not null" json:"invoice_number" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	PaidAt        *time.Time      `json:"paid_at"`
	NoCharge      *bool           `gorm:"not null;default:false" json:"no_charge"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	JobId         int             `json:"job_id" binding:"required"`
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

func (i Invoice) GetId() int {
	return i.ID
}

// DisplayStatus derives Paid/NoCharge/Pending from the stored pair.
func (i Invoice) DisplayStatus() InvoiceDisplayStatus {
	if i.PaidAt != nil {
		return InvoiceDisplayStatusPaid
	}
	if utils.DereferencePtr(i.NoCharge) {
		return InvoiceDisplayStatusNoCharge
	}
	return InvoiceDisplayStatusPending
}

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	db := config.GetDB()
	invoice := Invoice{
		JobId:         input.JobId,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		NoCharge:      utils.NewFalse(),
	}
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// MarkInvoicePaid stamps paid_at. Paid and no-charge are mutually exclusive;
// marking paid clears no_charge in the same write.
func MarkInvoicePaid(ctx context.Context, id int, paid bool) (*Invoice, error) {
	db := config.GetDB()
	var invoice Invoice
	if err := db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{"paid_at": nil}
	invoice.PaidAt = nil
	if paid {
		now := time.Now().UTC()
		updates["paid_at"] = now
		updates["no_charge"] = false
		invoice.PaidAt = &now
		invoice.NoCharge = utils.NewFalse()
	}
	if err := db.WithContext(ctx).Model(&invoice).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// MarkInvoiceNoCharge flags the invoice as no-charge; a paid invoice cannot
// be flagged.
func MarkInvoiceNoCharge(ctx context.Context, id int, noCharge bool) (*Invoice, error) {
	db := config.GetDB()
	var invoice Invoice
	if err := db.WithContext(ctx).First(&invoice, id).Error; err != nil {
		return nil, err
	}
	if noCharge && invoice.PaidAt != nil {
		return nil, errors.New("invoice is already paid")
	}
	if err := db.WithContext(ctx).Model(&invoice).UpdateColumn("no_charge", noCharge).Error; err != nil {
		return nil, err
	}
	invoice.NoCharge = &noCharge
	return &invoice, nil
}
