package dto

import (
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	gModel "github.com/yar64/diplom-equipment-rental-sub001/shared/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type CreateEquipmentRequest struct {
	Name             string   `json:"name"                validate:"required,min=3,max=100"`
	CategoryID       string   `json:"category_id"         validate:"required"`
	Description      string   `json:"description"`
	PricePerDayCents int64    `json:"price_per_day_cents" validate:"min=0"`
	Stock            int      `json:"stock"               validate:"min=0"`
	Images           []string `json:"images"              validate:"omitempty,dive,url"`
}

func (c *CreateEquipmentRequest) ToModel(user string) model.Equipment {
	return model.Equipment{
		ID:               uuid.NewString(),
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		Description:      c.Description,
		PricePerDayCents: c.PricePerDayCents,
		Stock:            c.Stock,
		Images:           c.Images,
		Active:           true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateEquipmentRequest struct {
	Name             string         `db:"name"                json:"name"                validate:"omitempty,min=3,max=100"`
	CategoryID       string         `db:"category_id"         json:"category_id"         validate:"omitempty"`
	Description      string         `db:"description"         json:"description"         validate:"omitempty"`
	PricePerDayCents int64          `db:"price_per_day_cents" json:"price_per_day_cents" validate:"omitempty,min=0"`
	Stock            *int           `db:"stock"               json:"stock"               validate:"omitempty,min=0"`
	Images           pq.StringArray `db:"images"              json:"images"              validate:"omitempty,dive,url"`
	Active           *bool          `db:"active"              json:"active"`
}

type EquipmentResponse struct {
	ID               string   `json:"id"`
	CategoryID       string   `json:"category_id"`
	CategoryName     string   `json:"category_name"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	Stock            int      `json:"stock"`
	Images           []string `json:"images"`
	Active           bool     `json:"active"`
	gDto.Metadata
}

func (r *EquipmentResponse) FromModel(model model.Equipment) {
	r.ID = model.ID
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Name = model.Name
	r.Description = model.Description
	r.PricePerDayCents = model.PricePerDayCents
	r.Stock = model.Stock
	r.Images = model.Images
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetEquipmentsResponse struct {
	Equipments []EquipmentResponse `json:"equipments"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetEquipmentsResponse) FromModels(models []model.Equipment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Equipments = make([]EquipmentResponse, len(models))
	for i, m := range models {
		r.Equipments[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

type DeleteImagesRequest struct {
	ImageURLs []string `json:"image_urls" validate:"required,min=1,dive,url"`
}
