package model

import (
	"time"

	"github.com/yar64/diplom-equipment-rental-sub001/shared/failure"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID          = "id"
	FieldBookingID   = "booking_id"
	FieldAmountCents = "amount_cents"
	FieldMethod      = "method"
	FieldStatus      = "status"
	FieldPaidAt      = "paid_at"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusRefunded Status = "refunded"
	StatusFailed   Status = "failed"
)

func ParseStatus(raw string) (Status, error) {
	switch status := Status(raw); status {
	case StatusPending, StatusPaid, StatusRefunded, StatusFailed:
		return status, nil
	default:
		return "", failure.BadRequestFromString("unknown payment status: " + raw) //nolint:wrapcheck
	}
}

type Payment struct {
	ID          string     `db:"id"`
	BookingID   string     `db:"booking_id"`
	AmountCents int64      `db:"amount_cents"`
	Method      string     `db:"method"`
	Status      Status     `db:"status"`
	PaidAt      *time.Time `db:"paid_at"`

	model.Metadata
}
