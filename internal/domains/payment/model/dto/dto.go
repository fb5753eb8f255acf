package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/payment/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/constant"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	gModel "github.com/yar64/diplom-equipment-rental-sub001/shared/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID   string `json:"booking_id"   validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"min=0"`
	Method      string `json:"method"       validate:"required,oneof=cash card transfer"`
	Status      string `json:"status"       validate:"omitempty,oneof=pending paid refunded failed"`
}

func (c *CreatePaymentRequest) ToModel(user string) (model.Payment, error) {
	status := model.StatusPending

	if c.Status != "" {
		parsed, err := model.ParseStatus(c.Status)
		if err != nil {
			return model.Payment{}, err //nolint:wrapcheck
		}

		status = parsed
	}

	var paidAt *time.Time

	if status == model.StatusPaid {
		now := timezone.Now()
		paidAt = &now
	}

	return model.Payment{
		ID:          uuid.NewString(),
		BookingID:   c.BookingID,
		AmountCents: c.AmountCents,
		Method:      c.Method,
		Status:      status,
		PaidAt:      paidAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdatePaymentRequest struct {
	AmountCents int64  `db:"amount_cents" json:"amount_cents" validate:"omitempty,min=0"`
	Method      string `db:"method"       json:"method"       validate:"omitempty,oneof=cash card transfer"`
	Status      string `db:"status"       json:"status"       validate:"omitempty,oneof=pending paid refunded failed"`
}

type PaymentResponse struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	PaidAt      string `json:"paid_at,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.AmountCents = model.AmountCents
	r.Method = model.Method
	r.Status = string(model.Status)

	if model.PaidAt != nil {
		r.PaidAt = timezone.Format(*model.PaidAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, m := range models {
		r.Payments[i].FromModel(m)
	}
}

type RevenueResponse struct {
	TotalCents int64    `json:"total_cents"`
	Statuses   []string `json:"statuses"`
}
