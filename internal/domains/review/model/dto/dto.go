package dto

import (
	"github.com/google/uuid"

	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	gModel "github.com/yar64/diplom-equipment-rental-sub001/shared/model"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type CreateReviewRequest struct {
	EquipmentID string  `json:"equipment_id" validate:"required"`
	UserID      string  `json:"user_id"      validate:"required"`
	Rating      int     `json:"rating"       validate:"required,min=1,max=5"`
	Comment     *string `json:"comment,omitempty"`
}

func (c *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		ID:          uuid.NewString(),
		EquipmentID: c.EquipmentID,
		UserID:      c.UserID,
		Rating:      c.Rating,
		Comment:     c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Rating  int     `db:"rating"  json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment *string `db:"comment" json:"comment,omitempty"`
}

type ReviewResponse struct {
	ID            string  `json:"id"`
	EquipmentID   string  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	Rating        int     `json:"rating"`
	Comment       *string `json:"comment,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.EquipmentID = model.EquipmentID
	r.EquipmentName = model.EquipmentName
	r.UserID = model.UserID
	r.UserName = model.UserName
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}

type AverageRatingResponse struct {
	EquipmentID string  `json:"equipment_id"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
}
