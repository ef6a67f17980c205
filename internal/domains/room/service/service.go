package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/storage"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const msgRoomNotFound = "room not found"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Room
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	storage storage.Storage
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, storage storage.Storage) Room {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		storage: storage,
	}
}

func (s *serviceImpl) ensureRoomNumberFree(ctx context.Context, roomNumber *string, excludeID string) error {
	if roomNumber == nil || *roomNumber == "" {
		return nil
	}

	taken, err := s.repo.RoomNumberTaken(ctx, *roomNumber, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return failure.Conflict(fmt.Sprintf("room number %s is already in use", *roomNumber))
	}

	return nil
}

// upload stores every image and returns their URLs in request order.
// On failure the images uploaded so far are removed.
func (s *serviceImpl) upload(ctx context.Context, images []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(images))

	for _, header := range images {
		url, err := s.uploadOne(ctx, header)
		if err != nil {
			s.removeImages(ctx, urls)

			return nil, err
		}

		urls = append(urls, url)
	}

	return urls, nil
}

func (s *serviceImpl) uploadOne(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to open uploaded image")

		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	url, err := s.storage.UploadFile(ctx, s.cfg.External.Storage.Directory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to upload image")

		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storage.DeleteFile(ctx, url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete image")
		}
	}
}

// invalidate drops the cached entity and every cached listing before the write is acknowledged,
// so a read issued after the response never sees the old state.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)

	if id != "" {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCountRoom)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.ensureRoomNumberFree(ctx, req.RoomNumber, ""); err != nil {
		return res, err
	}

	urls, err := s.upload(ctx, req.Images)
	if err != nil {
		return res, err
	}

	room := req.ToModel(user, urls)

	if err = s.repo.Insert(ctx, room); err != nil {
		s.removeImages(ctx, urls)

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("room number is already in use")
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, "")

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheGetAllRoom, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetRoomsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		rooms, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to list rooms")

			return res, fmt.Errorf("failed to get rooms: %w", err)
		}

		res.FromModels(rooms, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheCountRoom, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count rooms")

			return 0, fmt.Errorf("failed to count rooms: %w", err)
		}

		return total, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("room.id", id)

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(model.CacheGetRoom, id), s.cfg.Cache.TTL, func(ctx context.Context) (res dto.RoomResponse, err error) {
		room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("room_id", id).Msg("failed to get room")

			return res, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return res, failure.NotFound(msgRoomNotFound)
		}

		res.FromModel(room)

		return res, nil
	})
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound(msgRoomNotFound)
	}

	if err = s.ensureRoomNumberFree(ctx, req.RoomNumber, id); err != nil {
		return res, err
	}

	urls, err := s.upload(ctx, req.Images)
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)
	if len(urls) > 0 {
		updatedFields[model.FieldImages] = pq.StringArray(append(urls, current.Images...))
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		s.removeImages(ctx, urls)

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("room number is already in use")
		}

		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload room")

		return res, fmt.Errorf("failed to reload room: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return failure.NotFound(msgRoomNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room has bookings and cannot be deleted")
		}

		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go s.removeImages(context.WithoutCancel(ctx), room.Images)

	s.invalidate(ctx, id)

	return nil
}
