package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yar64/diplom-equipment-rental-sub001/config"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/kafka"
	"github.com/yar64/diplom-equipment-rental-sub001/infras/otel"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/lifecycle"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/model/dto"
	"github.com/yar64/diplom-equipment-rental-sub001/internal/domains/booking/repository"
	equipmentModel "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/model"
	equipmentRepo "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/equipment/repository"
	userModel "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/user/model"
	userRepo "github.com/yar64/diplom-equipment-rental-sub001/internal/domains/user/repository"
	"github.com/yar64/diplom-equipment-rental-sub001/shared"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/cache"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/constant"
	gDto "github.com/yar64/diplom-equipment-rental-sub001/shared/dto"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/failure"
	"github.com/yar64/diplom-equipment-rental-sub001/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

// statusChangedEvent is published to Kafka whenever a booking moves through
// its lifecycle, so downstream consumers (notifications, audit) can react.
type statusChangedEvent struct {
	BookingID  string `json:"booking_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by"`
	ChangedAt  string `json:"changed_at"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Transition(ctx context.Context, req dto.TransitionBookingRequest, id string) error
	Delete(ctx context.Context, id string) error
	ActiveRentals(ctx context.Context, bucket lifecycle.Bucket, now time.Time) (dto.GetActiveRentalsResponse, error)
	Stats(ctx context.Context, now time.Time, revenueStatuses []model.Status) (lifecycle.Stats, error)
}

type serviceImpl struct {
	repo          repository.Booking
	equipmentRepo equipmentRepo.Equipment
	userRepo      userRepo.User
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	broker        kafka.Client
}

func New(
	repo repository.Booking,
	equipmentRepo equipmentRepo.Equipment,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	broker kafka.Client,
) Booking {
	return &serviceImpl{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		broker:        broker,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	equipmentExists, err := s.equipmentRepo.Exist(ctx, shared.FilterByID(req.EquipmentID, equipmentModel.FieldID, equipmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if equipment exists")

		return fmt.Errorf("failed to check if equipment exists: %w", err)
	}

	if !equipmentExists {
		return failure.BadRequestFromString("equipment does not exist") //nolint:wrapcheck
	}

	userExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !userExists {
		return failure.BadRequestFromString("user does not exist") //nolint:wrapcheck
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if booking.EndDate.Before(booking.StartDate) {
		return failure.BadRequestFromString("end_date must not be before start_date") //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.StartDate != "" {
		startDate, parseErr := timezone.Parse(time.RFC3339, req.StartDate)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid start_date: %v", parseErr)) //nolint:wrapcheck
		}

		updatedFields[model.FieldStartDate] = startDate
	}

	if req.EndDate != "" {
		endDate, parseErr := timezone.Parse(time.RFC3339, req.EndDate)
		if parseErr != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid end_date: %v", parseErr)) //nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = endDate
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

// Transition moves a booking through its lifecycle, enforcing the allowed
// state machine and announcing the change on the broker.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(next) {
		return failure.BadRequestFromString(
			fmt.Sprintf("booking cannot move from %s to %s", booking.Status, next),
		) //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	scope.AddEvent(fmt.Sprintf("Booking %s moved from %s to %s", id, booking.Status, next))

	go func() {
		c := context.WithoutCancel(ctx)

		event := statusChangedEvent{
			BookingID:  id,
			FromStatus: string(booking.Status),
			ToStatus:   string(next),
			ChangedBy:  user,
			ChangedAt:  timezone.Format(timezone.Now(), constant.DateFormat),
		}

		if err := s.broker.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{Key: id, Value: event}); err != nil {
			log.Error().Err(err).Str("bookingID", id).Msg("failed to publish booking status event")
		}
	}()

	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBooking(ctx, id)

	return nil
}

// ActiveRentals returns the in-progress bookings matching the temporal
// bucket, each paired with its derived view, plus the aggregate stats for the
// same snapshot. The caller captures `now` once per refresh cycle.
func (s *serviceImpl) ActiveRentals(ctx context.Context, bucket lifecycle.Bucket, now time.Time) (res dto.GetActiveRentalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ActiveRentals")
	defer scope.End()
	defer scope.TraceIfError(err)

	snapshot, err := s.inProgressSnapshot(ctx)
	if err != nil {
		return res, err
	}

	filtered, err := lifecycle.FilterByBucket(snapshot, bucket, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to filter active rentals")

		return res, fmt.Errorf("failed to filter active rentals: %w", err)
	}

	res.Rentals = make([]dto.ActiveRentalResponse, len(filtered))

	for i, booking := range filtered {
		view, classifyErr := lifecycle.Classify(booking, now)
		if classifyErr != nil {
			log.Error().Err(classifyErr).Str("bookingID", booking.ID).Msg("failed to classify booking")

			return res, fmt.Errorf("failed to classify booking: %w", classifyErr)
		}

		res.Rentals[i].FromModel(booking, view)
	}

	stats, err := lifecycle.ComputeStats(filtered, now, model.InProgressStatuses())
	if err != nil {
		return res, fmt.Errorf("failed to compute rental stats: %w", err)
	}

	res.Stats = stats

	return res, nil
}

// Stats aggregates the whole booking snapshot for the dashboard. The revenue
// subset is caller-supplied: panels disagree on what counts as revenue.
func (s *serviceImpl) Stats(ctx context.Context, now time.Time, revenueStatuses []model.Status) (res lifecycle.Stats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	snapshot, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking snapshot")

		return res, fmt.Errorf("failed to get booking snapshot: %w", err)
	}

	res, err = lifecycle.ComputeStats(snapshot, now, revenueStatuses)
	if err != nil {
		return res, fmt.Errorf("failed to compute booking stats: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) inProgressSnapshot(ctx context.Context) ([]model.Booking, error) {
	statuses := model.InProgressStatuses()

	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    values,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldStartDate,
		SortDir: gDto.SortDirAsc,
	}

	snapshot, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get in-progress bookings")

		return nil, fmt.Errorf("failed to get in-progress bookings: %w", err)
	}

	return snapshot, nil
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
