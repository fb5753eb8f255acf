package dto

import (
	"github.com/google/uuid"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/category/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	gModel "github.com/yar64/diplom-equipment-rental-sub001/shared/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=3,max=100"`
	Description string `json:"description"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	return model.Category{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,min=3,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, m := range models {
		r.Categories[i].FromModel(m)
	}
}

// DistributionSlice is one wedge of the dashboard's category pie.
type DistributionSlice struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

type DistributionResponse struct {
	Slices []DistributionSlice `json:"slices"`
	Total  int                 `json:"total"`
}
