package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Student=MockStudentService

import (
	"context"
	"fmt"
	"galpao/config"
	"galpao/infras/otel"
	"galpao/internal/domains/student/model"
	"galpao/internal/domains/student/model/dto"
	"galpao/internal/domains/student/repository"
	"galpao/shared"
	"galpao/shared/cache"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/failure"
	"galpao/shared/password"
	"galpao/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	cacheGetAllStudent = shared.BuildCacheKey(constant.CacheKeyStudentPrefix, "gets")
	cacheCountStudent  = shared.BuildCacheKey(constant.CacheKeyStudentPrefix, "count")
)

type Student interface {
	Register(ctx context.Context, req dto.RegisterStudentRequest) (dto.RegisterStudentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetStudentsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams) (int, error)
	Get(ctx context.Context, name string) (dto.StudentResponse, error)
}

type serviceImpl struct {
	repo  repository.Student
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Student, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Student {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Register inserts a student or, when the name is taken, overwrites payment, credits and password.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterStudentRequest) (res dto.RegisterStudentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".student.Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username, _ := ctx.Value(constant.ContextKeyUserName).(string)
	if username == constant.Empty {
		username = constant.ContextSystem
	}

	existing, err := s.repo.Get(ctx, repository.FilterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return res, fmt.Errorf("failed to get student: %w", err)
	}

	plain := req.PlainPassword()
	if err = password.Check(plain); err != nil {
		return res, failure.BadRequest(err)
	}

	hashedPassword, err := password.Hash(plain)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	if existing.ID != constant.Empty {
		update := dto.UpdateStudentRequest{Password: hashedPassword, Payment: req.Payment, Credits: req.Credits}

		if err = s.repo.Update(ctx, update.ToFields(username), shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update student")

			return res, fmt.Errorf("failed to update student: %w", err)
		}

		existing.Payment = req.Payment
		existing.Credits = req.Credits
		existing.Touch(timezone.Now(), username)

		res.Student.FromModel(existing)
		res.Updated = true
	} else {
		student := req.ToModel(username, hashedPassword, timezone.Now())

		if err = s.repo.Insert(ctx, student); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return res, failure.Conflict("student already registered, try again")
			}

			log.Error().Err(err).Msg("failed to create student")

			return res, fmt.Errorf("failed to create student: %w", err)
		}

		res.Student.FromModel(student)
	}

	log.Info().Str("student", req.Name).Bool("updated", res.Updated).Msg("student registered")

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyStudentPrefix)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetStudentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".student.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params = params.SortedBy(model.TableName + "." + model.FieldName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllStudent, params, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for students")

		return res, nil
	}

	total, err := s.Count(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to count students")

		return res, fmt.Errorf("failed to count students: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get students")

		return res, fmt.Errorf("failed to get students: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save students to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".student.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountStudent, params, gDto.FilterGroup{})

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for student count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count students")

		return res, fmt.Errorf("failed to count students: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save student count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, name string) (res dto.StudentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".student.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	student, err := s.repo.Get(ctx, repository.FilterByName(name))
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return res, fmt.Errorf("failed to get student: %w", err)
	}

	if student.ID == constant.Empty {
		return res, failure.NotFound("student not found")
	}

	res.FromModel(student)

	return res, nil
}
