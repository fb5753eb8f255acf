package model

import (
	"time"

	"github.com/yar64/diplom-equipment-rental-sub001/shared/failure"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldEquipmentID     = "equipment_id"
	FieldUserID          = "user_id"
	FieldStatus          = "status"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldTotalDays       = "total_days"
	FieldTotalPriceCents = "total_price_cents"
	FieldEventAddress    = "event_address"
	FieldNotes           = "notes"
)

// Status is the booking's business-process state. It is a closed set: values
// read from storage or requests go through ParseStatus so an unknown tag is an
// error, never a silent fallthrough.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions holds the allowed lifecycle moves: pending -> confirmed ->
// active -> completed, with cancellation possible while not yet active.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(raw)

	if _, ok := transitions[status]; !ok {
		return "", failure.BadRequestFromString("unknown booking status: " + raw) //nolint:wrapcheck
	}

	return status, nil
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// InProgressStatuses are the lifecycle states shown on the active-rentals view.
func InProgressStatuses() []Status {
	return []Status{StatusConfirmed, StatusActive}
}

type Booking struct {
	ID              string    `db:"id"`
	EquipmentID     string    `db:"equipment_id"`
	UserID          string    `db:"user_id"`
	Status          Status    `db:"status"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	TotalDays       int       `db:"total_days"`
	TotalPriceCents int64     `db:"total_price_cents"`
	EventAddress    *string   `db:"event_address"`
	Notes           *string   `db:"notes"`

	EquipmentName string  `db:"equipment_name" table:"equipments" column:"name"`
	CategoryName  string  `db:"category_name"  table:"categories" column:"name"`
	UserName      *string `db:"user_name"      table:"users"      column:"full_name"`
	UserEmail     string  `db:"user_email"     table:"users"      column:"email"`
	UserPhone     *string `db:"user_phone"     table:"users"      column:"phone"`

	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN equipments ON equipments.id = bookings.equipment_id " +
		"JOIN categories ON categories.id = equipments.category_id " +
		"JOIN users ON users.id = bookings.user_id"
}
