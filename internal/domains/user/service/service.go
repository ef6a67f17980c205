package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	msgUserNotFound   = "user not found"
	msgEmptyUpdate    = "update request cannot be empty"
	msgSelfDemotion   = "admins cannot demote themselves"
	msgBlankFirstName = "first name cannot be blank"
)

type User interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	// Update is the admin edit of any account.
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	// UpdateProfile lets an account edit its own name.
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheGetAllUser, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetUsersResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		users, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to list users")

			return res, fmt.Errorf("failed to get users: %w", err)
		}

		res.FromModels(users, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheCountUser, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count users")

			return 0, fmt.Errorf("failed to count users: %w", err)
		}

		return total, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("user.id", id)

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(model.CacheGetUser, id), s.cfg.Cache.TTL, func(ctx context.Context) (res dto.UserResponse, err error) {
		user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("user_id", id).Msg("failed to get user")

			return res, fmt.Errorf("failed to get user: %w", err)
		}

		if user.ID == constant.Empty {
			return res, failure.NotFound(msgUserNotFound)
		}

		res.FromModel(user)

		return res, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString(msgEmptyUpdate)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == id && req.Role != nil && *req.Role != constant.RoleAdmin {
		return failure.BadRequestFromString(msgSelfDemotion)
	}

	return s.apply(ctx, shared.TransformFields(req, actor), id)
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	switch {
	case req == (dto.UpdateProfileRequest{}):
		return failure.BadRequestFromString(msgEmptyUpdate)
	case req.FirstName != nil && *req.FirstName == constant.Empty:
		return failure.BadRequestFromString(msgBlankFirstName)
	}

	return s.apply(ctx, shared.TransformFields(req, id), id)
}

// apply writes fields to an existing account and drops every cached view of it.
func (s *serviceImpl) apply(ctx context.Context, fields map[string]any, id string) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to check user")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exists {
		return failure.NotFound(msgUserNotFound)
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.forget(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) forget(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGetUser, id)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to evict cached user")
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllUser)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCountUser)
}
