package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/lifecycle"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/constant"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	gModel "github.com/yar64/diplom-equipment-rental-sub001/shared/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type CreateBookingRequest struct {
	EquipmentID     string  `json:"equipment_id"      validate:"required"`
	UserID          string  `json:"user_id"           validate:"required"`
	StartDate       string  `json:"start_date"        validate:"required"`
	EndDate         string  `json:"end_date"          validate:"required"`
	TotalDays       int     `json:"total_days"        validate:"required,min=1"`
	TotalPriceCents int64   `json:"total_price_cents" validate:"min=0"`
	EventAddress    *string `json:"event_address,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status"            validate:"omitempty,oneof=pending confirmed"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	startDate, err := timezone.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	endDate, err := timezone.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	status := model.StatusPending
	if c.Status != "" {
		status, err = model.ParseStatus(c.Status)
		if err != nil {
			return model.Booking{}, err //nolint:wrapcheck
		}
	}

	return model.Booking{
		ID:              uuid.NewString(),
		EquipmentID:     c.EquipmentID,
		UserID:          c.UserID,
		Status:          status,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalDays:       c.TotalDays,
		TotalPriceCents: c.TotalPriceCents,
		EventAddress:    c.EventAddress,
		Notes:           c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingRequest struct {
	StartDate       string  `json:"start_date"        validate:"omitempty"`
	EndDate         string  `json:"end_date"          validate:"omitempty"`
	TotalDays       int     `db:"total_days"        json:"total_days"        validate:"omitempty,min=1"`
	TotalPriceCents int64   `db:"total_price_cents" json:"total_price_cents" validate:"omitempty,min=0"`
	EventAddress    *string `db:"event_address"     json:"event_address,omitempty"`
	Notes           *string `db:"notes"             json:"notes,omitempty"`
}

type TransitionBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed active completed cancelled"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	EquipmentID     string  `json:"equipment_id"`
	EquipmentName   string  `json:"equipment_name"`
	CategoryName    string  `json:"category_name"`
	UserID          string  `json:"user_id"`
	UserName        *string `json:"user_name,omitempty"`
	UserEmail       string  `json:"user_email"`
	UserPhone       *string `json:"user_phone,omitempty"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	TotalPriceCents int64   `json:"total_price_cents"`
	EventAddress    *string `json:"event_address,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.EquipmentID = model.EquipmentID
	r.EquipmentName = model.EquipmentName
	r.CategoryName = model.CategoryName
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.UserEmail = model.UserEmail
	r.UserPhone = model.UserPhone
	r.Status = string(model.Status)
	r.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	r.TotalDays = model.TotalDays
	r.TotalPriceCents = model.TotalPriceCents
	r.EventAddress = model.EventAddress
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// ActiveRentalResponse pairs a booking with its derived temporal view for the
// active-rentals screen.
type ActiveRentalResponse struct {
	BookingResponse
	DaysRemaining int    `json:"days_remaining"`
	TemporalState string `json:"temporal_state"`
	StartsToday   bool   `json:"starts_today"`
}

func (r *ActiveRentalResponse) FromModel(model model.Booking, view lifecycle.View) {
	r.BookingResponse.FromModel(model)
	r.DaysRemaining = view.DaysRemaining
	r.TemporalState = string(view.State)
	r.StartsToday = view.StartsToday
}

type GetActiveRentalsResponse struct {
	Rentals []ActiveRentalResponse `json:"rentals"`
	Stats   lifecycle.Stats        `json:"stats"`
}
