package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/yar64/diplom-equipment-rental-sub001/config"
	kafkaMocks "github.com/yar64/diplom-equipment-rental-sub001/infras/kafka/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/lifecycle"
	bookingMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model/dto"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/service"
	equipmentMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/mocks"
	userMocks "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/user/mocks"
	cacheMocks "github.com/yar64/diplom-equipment-rental-sub001/shared/cache/mocks"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

type bookingServiceFixture struct {
	repo          *bookingMocks.MockBooking
	equipmentRepo *equipmentMocks.MockEquipment
	userRepo      *userMocks.MockUser
	cache         *cacheMocks.MockRedisCache
	broker        *kafkaMocks.MockClient
	svc           service.Booking
}

func newBookingServiceFixture(t *testing.T) *bookingServiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &bookingServiceFixture{
		repo:          bookingMocks.NewMockBooking(ctrl),
		equipmentRepo: equipmentMocks.NewMockEquipment(ctrl),
		userRepo:      userMocks.NewMockUser(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
		broker:        kafkaMocks.NewMockClient(ctrl),
	}

	f.svc = service.New(f.repo, f.equipmentRepo, f.userRepo, &config.Config{}, f.cache, mocks.NewOtel(), f.broker)

	// Cache writes and invalidations run on detached goroutines, so the
	// test cannot require them deterministically.
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func inProgressBooking(id string, status model.Status, endsIn time.Duration, now time.Time, priceCents int64) model.Booking {
	return model.Booking{
		ID:              id,
		EquipmentID:     "equipment-1",
		UserID:          "user-1",
		Status:          status,
		StartDate:       now.Add(-48 * time.Hour),
		EndDate:         now.Add(endsIn),
		TotalDays:       3,
		TotalPriceCents: priceCents,
	}
}

func TestBookingService_Create(t *testing.T) {
	now := timezone.Now()

	validReq := dto.CreateBookingRequest{
		EquipmentID:     "equipment-1",
		UserID:          "user-1",
		StartDate:       now.Format(time.RFC3339),
		EndDate:         now.Add(72 * time.Hour).Format(time.RFC3339),
		TotalDays:       3,
		TotalPriceCents: 45_000,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *bookingServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func(f *bookingServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.userRepo.EXPECT().
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
			req:  validReq,
			setupMock: func(f *bookingServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "user does not exist",
			req:  validReq,
			setupMock: func(f *bookingServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "end date before start date",
			req: dto.CreateBookingRequest{
				EquipmentID:     "equipment-1",
				UserID:          "user-1",
				StartDate:       now.Format(time.RFC3339),
				EndDate:         now.Add(-24 * time.Hour).Format(time.RFC3339),
				TotalDays:       1,
				TotalPriceCents: 15_000,
			},
			setupMock: func(f *bookingServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository failure",
			req:  validReq,
			setupMock: func(f *bookingServiceFixture) {
				f.equipmentRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.userRepo.EXPECT().
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
			f := newBookingServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Transition(t *testing.T) {
	pending := model.Booking{ID: "booking-1", Status: model.StatusPending}
	completed := model.Booking{ID: "booking-2", Status: model.StatusCompleted}

	tests := []struct {
		name      string
		id        string
		req       dto.TransitionBookingRequest
		setupMock func(f *bookingServiceFixture)
		wantErr   bool
	}{
		{
			name: "pending to confirmed",
			id:   "booking-1",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				f.broker.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "pending straight to completed is rejected",
			id:   "booking-1",
			req:  dto.TransitionBookingRequest{Status: "completed"},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr: true,
		},
		{
			name: "completed is terminal",
			id:   "booking-2",
			req:  dto.TransitionBookingRequest{Status: "active"},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completed, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown status",
			id:   "booking-1",
			req:  dto.TransitionBookingRequest{Status: "archived"},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)
			},
			wantErr: true,
		},
		{
			name: "booking not found",
			id:   "missing",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Transition(context.Background(), tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_ActiveRentals(t *testing.T) {
	now := timezone.Now()

	onTrack := inProgressBooking("booking-1", model.StatusActive, 30*time.Hour, now, 10_000)
	overdue := inProgressBooking("booking-2", model.StatusActive, -26*time.Hour, now, 20_000)
	startsToday := model.Booking{
		ID:              "booking-3",
		EquipmentID:     "equipment-1",
		UserID:          "user-1",
		Status:          model.StatusConfirmed,
		StartDate:       now,
		EndDate:         now.Add(30 * time.Hour),
		TotalDays:       2,
		TotalPriceCents: 5_000,
	}
	snapshot := []model.Booking{onTrack, overdue, startsToday}

	tests := []struct {
		name        string
		bucket      lifecycle.Bucket
		wantIDs     []string
		wantOverdue int
		wantRevenue int64
	}{
		{
			name:        "all rentals",
			bucket:      lifecycle.BucketAll,
			wantIDs:     []string{"booking-1", "booking-2", "booking-3"},
			wantOverdue: 1,
			wantRevenue: 35_000,
		},
		{
			name:        "overdue only",
			bucket:      lifecycle.BucketOverdue,
			wantIDs:     []string{"booking-2"},
			wantOverdue: 1,
			wantRevenue: 20_000,
		},
		{
			name:        "starting today only",
			bucket:      lifecycle.BucketToday,
			wantIDs:     []string{"booking-3"},
			wantOverdue: 0,
			wantRevenue: 5_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingServiceFixture(t)

			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(snapshot, nil)

			res, err := f.svc.ActiveRentals(context.Background(), tt.bucket, now)

			assert.NoError(t, err)
			assert.Len(t, res.Rentals, len(tt.wantIDs))

			for i, id := range tt.wantIDs {
				assert.Equal(t, id, res.Rentals[i].ID)
			}

			assert.Equal(t, len(tt.wantIDs), res.Stats.Total)
			assert.Equal(t, tt.wantOverdue, res.Stats.OverdueCount)
			assert.Equal(t, tt.wantRevenue, res.Stats.RevenueTotalCents)
		})
	}
}

func TestBookingService_ActiveRentals_RepositoryFailure(t *testing.T) {
	f := newBookingServiceFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	_, err := f.svc.ActiveRentals(context.Background(), lifecycle.BucketAll, timezone.Now())

	assert.Error(t, err)
}

func TestBookingService_Stats(t *testing.T) {
	now := timezone.Now()

	snapshot := []model.Booking{
		inProgressBooking("booking-1", model.StatusActive, 30*time.Hour, now, 10_000),
		inProgressBooking("booking-2", model.StatusActive, -26*time.Hour, now, 20_000),
		inProgressBooking("booking-3", model.StatusCancelled, 12*time.Hour, now, 99_000),
	}

	f := newBookingServiceFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(snapshot, nil)

	stats, err := f.svc.Stats(context.Background(), now, model.InProgressStatuses())

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, int64(30_000), stats.RevenueTotalCents)
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{ID: "booking-1", Status: model.StatusActive}

	tests := []struct {
		name      string
		id        string
		setupMock func(f *bookingServiceFixture)
		wantErr   bool
	}{
		{
			name: "found",
			id:   "booking-1",
			setupMock: func(f *bookingServiceFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(f *bookingServiceFixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingServiceFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, booking.ID, res.ID)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *bookingServiceFixture)
		wantErr   bool
	}{
		{
			name: "successful deletion",
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
				f.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			setupMock: func(f *bookingServiceFixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingServiceFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
