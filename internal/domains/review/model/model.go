package model

import "github.com/yar64/diplom-equipment-rental-sub001/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID          = "id"
	FieldEquipmentID = "equipment_id"
	FieldUserID      = "user_id"
	FieldRating      = "rating"
	FieldComment     = "comment"
)

type Review struct {
	ID          string  `db:"id"`
	EquipmentID string  `db:"equipment_id"`
	UserID      string  `db:"user_id"`
	Rating      int     `db:"rating"`
	Comment     *string `db:"comment"`

	EquipmentName string  `db:"equipment_name" table:"equipments" column:"name"`
	UserName      *string `db:"user_name"      table:"users"      column:"full_name"`

	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "JOIN equipments ON equipments.id = reviews.equipment_id " +
		"JOIN users ON users.id = reviews.user_id"
}
