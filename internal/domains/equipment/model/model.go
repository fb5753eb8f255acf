package model

import (
	"github.com/lib/pq"

	"github.com/yar64/diplom-equipment-rental-sub001/shared/model"
)

const (
	TableName  = "equipments"
	EntityName = "equipment"

	FieldID               = "id"
	FieldCategoryID       = "category_id"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldPricePerDayCents = "price_per_day_cents"
	FieldStock            = "stock"
	FieldImages           = "images"
	FieldActive           = "active"
)

type Equipment struct {
	ID               string         `db:"id"`
	CategoryID       string         `db:"category_id"`
	Name             string         `db:"name"`
	Description      string         `db:"description"`
	PricePerDayCents int64          `db:"price_per_day_cents"`
	Stock            int            `db:"stock"`
	Images           pq.StringArray `db:"images"`
	Active           bool           `db:"active"`

	CategoryName string `db:"category_name" table:"categories" column:"name"`

	model.Metadata
}

func (Equipment) GetJoinQuery() string {
	return "JOIN categories ON categories.id = equipments.category_id"
}
