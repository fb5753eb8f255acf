package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel/mocks"
	equipmentMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/mocks"
	reviewMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/model"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/model/dto"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/review/service"
	cacheMocks "github.com/yar64/diplom-equipment-rental-sub001/shared/cache/mocks"
)

type reviewServiceFixture struct {
	repo          *reviewMocks.MockReview
	equipmentRepo *equipmentMocks.MockEquipment
	cache         *cacheMocks.MockRedisCache
	svc           service.Review
}

func newReviewServiceFixture(t *testing.T) *reviewServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &reviewServiceFixture{
		repo:          reviewMocks.NewMockReview(ctrl),
		equipmentRepo: equipmentMocks.NewMockEquipment(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.equipmentRepo, &config.Config{}, f.cache, mocks.NewOtel())

	// Cache writes and invalidations run on detached goroutines, so the
	// test cannot require them deterministically.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestReviewService_Create(t *testing.T) {
	validReq := dto.CreateReviewRequest{
		EquipmentID: "equipment-1",
		UserID:      "user-1",
		Rating:      4,
	}

	tests := []struct {
		name      string
		setupMock func(f *reviewServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f *reviewServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "equipment does not exist",
			setupMock: func(f *reviewServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository failure",
			setupMock: func(f *reviewServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(context.Background(), validReq)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_AverageRating(t *testing.T) {
	tests := []struct {
		name        string
		reviews     []model.Review
		repoErr     error
		wantAverage float64
		wantCount   int
		wantErr     bool
	}{
		{
			name: "mean over several reviews",
			reviews: []model.Review{
				{ID: "review-1", EquipmentID: "equipment-1", Rating: 5},
				{ID: "review-2", EquipmentID: "equipment-1", Rating: 4},
				{ID: "review-3", EquipmentID: "equipment-1", Rating: 3},
			},
			wantAverage: 4.0,
			wantCount:   3,
		},
		{
			name: "fractional mean",
			reviews: []model.Review{
				{ID: "review-1", EquipmentID: "equipment-1", Rating: 5},
				{ID: "review-2", EquipmentID: "equipment-1", Rating: 4},
			},
			wantAverage: 4.5,
			wantCount:   2,
		},
		{
			name:        "no reviews yields zero average",
			reviews:     []model.Review{},
			wantAverage: 0,
			wantCount:   0,
		},
		{
			name:    "repository failure",
			repoErr: errors.New("query failed"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReviewServiceFixture(t)

			f.cache.EXPECT().
				Get(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("cache miss"))
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.reviews, tt.repoErr)

			res, err := f.svc.AverageRating(context.Background(), "equipment-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "equipment-1", res.EquipmentID)
			assert.Equal(t, tt.wantCount, res.Count)
			assert.InDelta(t, tt.wantAverage, res.Average, 0.001)
		})
	}
}
