package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel/mocks"
	s3Mocks "github.com/yar64/diplom-equipment-rental-sub001/infras/s3/mocks"
	categoryMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/category/mocks"
	equipmentMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/model"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/model/dto"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/service"
	cacheMocks "github.com/yar64/diplom-equipment-rental-sub001/shared/cache/mocks"
)

type equipmentServiceFixture struct {
	repo         *equipmentMocks.MockEquipment
	categoryRepo *categoryMocks.MockCategory
	cache        *cacheMocks.MockRedisCache
	s3           *s3Mocks.MockS3
	svc          service.Equipment
}

func newEquipmentServiceFixture(t *testing.T) *equipmentServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &equipmentServiceFixture{
		repo:         equipmentMocks.NewMockEquipment(ctrl),
		categoryRepo: categoryMocks.NewMockCategory(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		s3:           s3Mocks.NewMockS3(ctrl),
	}

	f.svc = service.New(f.repo, f.categoryRepo, &config.Config{}, f.cache, mocks.NewOtel(), f.s3)

	// Cache writes, invalidations and image cleanup run on detached
	// goroutines, so the test cannot require them deterministically.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.s3.EXPECT().GetObjectNameFromURL(gomock.Any(), gomock.Any()).Return("object-name").AnyTimes()
	f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestEquipmentService_Create(t *testing.T) {
	validReq := dto.CreateEquipmentRequest{
		Name:             "Moving Head Light",
		CategoryID:       "category-1",
		PricePerDayCents: 15_000,
		Stock:            4,
	}

	tests := []struct {
		name      string
		setupMock func(f *equipmentServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			setupMock: func(f *equipmentServiceFixture) {
				f.categoryRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "category does not exist",
			setupMock: func(f *equipmentServiceFixture) {
				f.categoryRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "repository failure",
			setupMock: func(f *equipmentServiceFixture) {
				f.categoryRepo.EXPECT().
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
			f := newEquipmentServiceFixture(t)
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

func TestEquipmentService_Get(t *testing.T) {
	t.Run("returns equipment with category name", func(t *testing.T) {
		f := newEquipmentServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Equipment{
				ID:           "equipment-1",
				CategoryID:   "category-1",
				Name:         "Moving Head Light",
				CategoryName: "Lighting",
				Stock:        4,
			}, nil)

		res, err := f.svc.Get(context.Background(), "equipment-1")

		assert.NoError(t, err)
		assert.Equal(t, "equipment-1", res.ID)
		assert.Equal(t, "Lighting", res.CategoryName)
	})

	t.Run("not found", func(t *testing.T) {
		f := newEquipmentServiceFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Equipment{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestEquipmentService_Delete(t *testing.T) {
	t.Run("removes the equipment and its images", func(t *testing.T) {
		f := newEquipmentServiceFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Equipment{
				ID:     "equipment-1",
				Images: []string{"https://cdn.example.com/equipment/light.jpg"},
			}, nil)
		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Delete(context.Background(), "equipment-1")

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newEquipmentServiceFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Equipment{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestEquipmentService_DeleteImagesFromS3(t *testing.T) {
	t.Run("deletes every listed image", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := equipmentMocks.NewMockEquipment(ctrl)
		categoryRepo := categoryMocks.NewMockCategory(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		s3Mock := s3Mocks.NewMockS3(ctrl)

		svc := service.New(repo, categoryRepo, &config.Config{}, cache, mocks.NewOtel(), s3Mock)

		s3Mock.EXPECT().
			GetObjectNameFromURL(gomock.Any(), "https://cdn.example.com/equipment/a.jpg").
			Return("a.jpg")
		s3Mock.EXPECT().
			GetObjectNameFromURL(gomock.Any(), "https://cdn.example.com/equipment/b.jpg").
			Return("b.jpg")
		s3Mock.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), model.EntityName, "a.jpg").
			Return(nil)
		s3Mock.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), model.EntityName, "b.jpg").
			Return(nil)

		err := svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{
				"https://cdn.example.com/equipment/a.jpg",
				"https://cdn.example.com/equipment/b.jpg",
			},
		})

		assert.NoError(t, err)
	})

	t.Run("aggregates delete failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := equipmentMocks.NewMockEquipment(ctrl)
		categoryRepo := categoryMocks.NewMockCategory(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		s3Mock := s3Mocks.NewMockS3(ctrl)

		svc := service.New(repo, categoryRepo, &config.Config{}, cache, mocks.NewOtel(), s3Mock)

		s3Mock.EXPECT().
			GetObjectNameFromURL(gomock.Any(), gomock.Any()).
			Return("a.jpg")
		s3Mock.EXPECT().
			DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("delete failed"))

		err := svc.DeleteImagesFromS3(context.Background(), dto.DeleteImagesRequest{
			ImageURLs: []string{"https://cdn.example.com/equipment/a.jpg"},
		})

		assert.ErrorIs(t, err, service.ErrDeleteImagesFromS3)
	})
}

func TestEquipmentService_UploadImage(t *testing.T) {
	t.Run("s3 failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := equipmentMocks.NewMockEquipment(ctrl)
		categoryRepo := categoryMocks.NewMockCategory(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		s3Mock := s3Mocks.NewMockS3(ctrl)

		svc := service.New(repo, categoryRepo, &config.Config{}, cache, mocks.NewOtel(), s3Mock)

		s3Mock.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), "light.jpg").
			Return("", errors.New("upload failed"))

		_, err := svc.UploadImage(context.Background(), dto.UploadImageRequest{
			Image: &multipart.FileHeader{Filename: "light.jpg"},
		})

		assert.Error(t, err)
	})

	t.Run("returns the uploaded URL", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		repo := equipmentMocks.NewMockEquipment(ctrl)
		categoryRepo := categoryMocks.NewMockCategory(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)
		s3Mock := s3Mocks.NewMockS3(ctrl)

		svc := service.New(repo, categoryRepo, &config.Config{}, cache, mocks.NewOtel(), s3Mock)

		s3Mock.EXPECT().
			UploadFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), "light.jpg").
			Return("https://cdn.example.com/equipment/light.jpg", nil)

		res, err := svc.UploadImage(context.Background(), dto.UploadImageRequest{
			Image: &multipart.FileHeader{Filename: "light.jpg"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/equipment/light.jpg", res.URL)
		assert.Equal(t, "light.jpg", res.FileName)
	})
}
