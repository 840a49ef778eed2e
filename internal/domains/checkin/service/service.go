package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Checkin=MockCheckinService

import (
	"context"
	"errors"
	"fmt"
	"galpao/config"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/internal/domains/checkin/model"
	"galpao/internal/domains/checkin/model/dto"
	"galpao/internal/domains/checkin/repository"
	studentModel "galpao/internal/domains/student/model"
	studentRepo "galpao/internal/domains/student/repository"
	"galpao/shared"
	"galpao/shared/cache"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/failure"
	"galpao/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidSlot      = "invalid slot"
	msgStudentNotFound  = "student not found"
	msgNoCredits        = "no credits available, contact the administration"
	msgAlreadyReserved  = "you already have a reservation for this slot"
	msgSlotFull         = "slot is full, try another slot"
	msgNoReservation    = "you have no reservation for this slot"
	msgCancelNotAllowed = "cancellation not allowed after %s UTC"

	summaryDays = 7

	generationTTLSeconds = 7 * 24 * 60 * 60
)

var (
	cacheSummary = shared.BuildCacheKey(constant.CacheKeyCheckinPrefix, "summary")

	// kept outside the cleared prefixes so it only ever grows
	cacheGeneration = shared.BuildCacheKey(constant.CacheKeyGenerationPrefix, constant.CacheKeyCheckinPrefix)
)

type Checkin interface {
	Book(ctx context.Context, studentName string, slot model.Slot) (dto.CheckinResponse, error)
	Cancel(ctx context.Context, studentName string, slot model.Slot) (dto.CheckinResponse, error)
	Status(ctx context.Context, studentName string) (dto.StatusResponse, error)
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	Policy() model.Policy
}

type serviceImpl struct {
	repo        repository.Checkin
	studentRepo studentRepo.Student
	transactor  postgres.Transactor
	clock       timezone.Clock
	policy      model.Policy
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Checkin,
	studentRepo studentRepo.Student,
	transactor postgres.Transactor,
	clock timezone.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Checkin {
	return &serviceImpl{
		repo:        repo,
		studentRepo: studentRepo,
		transactor:  transactor,
		clock:       clock,
		policy:      model.NewPolicy(cfg),
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Policy() model.Policy {
	return s.policy
}

// Book reserves a place for today. Checks run in order: slot, student, credits,
// duplicate, capacity. The insert and the credit debit share one transaction.
func (s *serviceImpl) Book(ctx context.Context, studentName string, slot model.Slot) (res dto.CheckinResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkin.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slot.Valid() {
		return res, failure.BadRequestFromString(msgInvalidSlot)
	}

	now := s.clock.Now()
	today := timezone.Day(now)
	day := today.Format(constant.DayFormat)

	scope.SetAttributes(map[string]any{"checkin.slot": string(slot), "checkin.date": day})

	student, err := s.getStudent(ctx, studentName)
	if err != nil {
		return res, err
	}

	if student.Credits <= 0 {
		return res, failure.UnprocessableEntity(msgNoCredits)
	}

	reserved, err := s.repo.Exist(ctx, reservationFilter(student.ID, day, slot))
	if err != nil {
		log.Error().Err(err).Msg("failed to check reservation")

		return res, fmt.Errorf("failed to check reservation: %w", err)
	}

	if reserved {
		return res, failure.Conflict(msgAlreadyReserved)
	}

	count, err := s.repo.Count(ctx, slotFilter(day, slot))
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	if count >= s.policy.Capacity {
		return res, failure.Conflict(msgSlotFull)
	}

	checkin := dto.NewCheckinModel(student.ID, today, slot, student.Name, now)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		count, err := s.repo.CountSlotTx(ctx, tx, day, slot)
		if err != nil {
			return err
		}

		if count >= s.policy.Capacity {
			return failure.Conflict(msgSlotFull)
		}

		if err = s.repo.InsertTx(ctx, tx, checkin); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return failure.Conflict(msgAlreadyReserved)
			}

			return err
		}

		debited, err := s.studentRepo.AdjustCreditsTx(ctx, tx, student.ID, -1, student.Name)
		if err != nil {
			return err
		}

		if !debited {
			return failure.UnprocessableEntity(msgNoCredits)
		}

		return nil
	})
	if err != nil {
		if _, ok := failure.From(err); ok {
			return res, err
		}

		log.Error().Err(err).Str("student", student.Name).Str("slot", string(slot)).Msg("failed to book slot")

		return res, fmt.Errorf("failed to book slot: %w", err)
	}

	log.Info().Str("student", student.Name).Str("slot", string(slot)).Str("date", day).Msg("slot booked")

	s.invalidateCaches(ctx)

	return dto.CheckinResponse{
		Message: fmt.Sprintf("check-in confirmed for %s", slot),
		Slot:    slot,
		Date:    day,
		Credits: student.Credits - 1,
	}, nil
}

// Cancel removes today's reservation and refunds the credit, provided the cutoff has not passed.
func (s *serviceImpl) Cancel(ctx context.Context, studentName string, slot model.Slot) (res dto.CheckinResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkin.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !slot.Valid() {
		return res, failure.BadRequestFromString(msgInvalidSlot)
	}

	now := s.clock.Now()
	if !s.policy.CanCancel(now) {
		return res, failure.UnprocessableEntity(fmt.Sprintf(msgCancelNotAllowed, s.policy.Cutoff()))
	}

	day := timezone.Day(now).Format(constant.DayFormat)

	scope.SetAttributes(map[string]any{"checkin.slot": string(slot), "checkin.date": day})

	student, err := s.getStudent(ctx, studentName)
	if err != nil {
		return res, err
	}

	reservation, err := s.repo.Get(ctx, reservationFilter(student.ID, day, slot))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound(msgNoReservation)
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		deleted, err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(reservation.ID, model.FieldID, model.TableName))
		if err != nil {
			return err
		}

		// another request cancelled it first; its refund already happened
		if deleted == 0 {
			return failure.NotFound(msgNoReservation)
		}

		refunded, err := s.studentRepo.AdjustCreditsTx(ctx, tx, student.ID, 1, student.Name)
		if err != nil {
			return err
		}

		if !refunded {
			return failure.NotFound(msgStudentNotFound)
		}

		return nil
	})
	if err != nil {
		if _, ok := failure.From(err); ok {
			return res, err
		}

		log.Error().Err(err).Str("student", student.Name).Str("slot", string(slot)).Msg("failed to cancel reservation")

		return res, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	log.Info().Str("student", student.Name).Str("slot", string(slot)).Str("date", day).Msg("reservation cancelled")

	s.invalidateCaches(ctx)

	return dto.CheckinResponse{
		Message: fmt.Sprintf("reservation for %s cancelled, credit refunded", slot),
		Slot:    slot,
		Date:    day,
		Credits: student.Credits + 1,
	}, nil
}

func (s *serviceImpl) Status(ctx context.Context, studentName string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkin.Status")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	student, err := s.getStudent(ctx, studentName)
	if err != nil {
		return res, err
	}

	now := s.clock.Now()
	day := timezone.Day(now).Format(constant.DayFormat)

	checkins, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByField(day, model.FieldDate, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get today's reservations")

		return res, fmt.Errorf("failed to get today's reservations: %w", err)
	}

	res.Name = student.Name
	res.Credits = student.Credits
	res.Date = day
	res.CanCancel = s.policy.CanCancel(now)
	res.CancelCutoffUTC = s.policy.Cutoff()
	res.FromCheckins(checkins, student.ID, s.policy.Capacity)

	return res, nil
}

// Summary reports today's roster per slot and the check-ins of the trailing seven days.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".checkin.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	today := timezone.Day(s.clock.Now())
	from := today.AddDate(0, 0, -(summaryDays - 1))
	day := today.Format(constant.DayFormat)

	generation, cacheable := s.generation(ctx)
	cacheKey := shared.BuildCacheKey(cacheSummary, day, generation)

	if cacheable {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for check-in summary")

			return res, nil
		}
	}

	params := gDto.QueryParams{}.SortedBy(model.TableName + "." + constant.FieldCreatedAt)

	checkins, err := s.repo.GetAll(ctx, params, periodFilter(from.Format(constant.DayFormat), day))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations of the week")

		return res, fmt.Errorf("failed to get reservations of the week: %w", err)
	}

	period := fmt.Sprintf("%s - %s", from.Format(constant.DayMonthShort), today.Format(constant.DayMonthShort))
	res.FromCheckins(checkins, day, period)

	if !cacheable {
		return res, nil
	}

	// a booking committed after the read bumps the generation, so this entry is never served
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save check-in summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getStudent(ctx context.Context, name string) (studentModel.Student, error) {
	student, err := s.studentRepo.Get(ctx, studentRepo.FilterByName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return student, fmt.Errorf("failed to get student: %w", err)
	}

	if student.ID == constant.Empty {
		return student, failure.NotFound(msgStudentNotFound)
	}

	return student, nil
}

// generation is the number of ledger changes seen by the cache. Summaries are cached per generation.
func (s *serviceImpl) generation(ctx context.Context) (string, bool) {
	var generation string

	err := s.cache.Get(ctx, cacheGeneration, &generation)

	switch {
	case err == nil:
		return generation, true
	case errors.Is(err, cache.Nil):
		return "0", true
	default:
		log.Warn().Err(err).Msg("check-in cache generation unavailable, summary not cached")

		return "", false
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	if _, err := s.cache.Increment(ctx, cacheGeneration, generationTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to bump check-in cache generation")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyCheckinPrefix)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyStudentPrefix)
	}()
}

func slotFilter(day string, slot model.Slot) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldDate, day),
		gDto.Eq(model.TableName, model.FieldSlot, string(slot)),
	)
}

func reservationFilter(studentID, day string, slot model.Slot) gDto.FilterGroup {
	filter := slotFilter(day, slot)
	filter.Filters = append(filter.Filters, gDto.Eq(model.TableName, model.FieldStudentID, studentID))

	return filter
}

func periodFilter(from, to string) gDto.FilterGroup {
	return gDto.And(gDto.Between(model.TableName, model.FieldDate, from, to))
}
