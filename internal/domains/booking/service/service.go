package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/notification"
	"hotel/internal/domains/booking/pricing"
	"hotel/internal/domains/booking/receipt"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/summary"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MsgBookingCreated = "Booking created and confirmation emails sent"

	msgBookingNotFound = "booking not found"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetByUser(ctx context.Context, userID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Receipt(ctx context.Context, id string) (dto.ReceiptFile, error)
}

type serviceImpl struct {
	repo       repository.Booking
	detailRepo repository.BookingDetail
	roomRepo   roomRepo.Room
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	mailer     mailer.Mailer
	kafka      kafka.Client
	receipt    receipt.Renderer
	composer   notification.Composer
	formatter  summary.Formatter
}

func New(
	repo repository.Booking,
	detailRepo repository.BookingDetail,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	mailer mailer.Mailer,
	kafka kafka.Client,
	receipt receipt.Renderer,
	composer notification.Composer,
) Booking {
	return &serviceImpl{
		repo:       repo,
		detailRepo: detailRepo,
		roomRepo:   roomRepo,
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		mailer:     mailer,
		kafka:      kafka,
		receipt:    receipt,
		composer:   composer,
		formatter:  summary.New(cfg.App.CurrencySymbol),
	}
}

// invalidate drops the cached entity and every cached listing before the write is acknowledged,
// so a read issued after the response never sees the old state.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)

	if id != "" {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCountBooking)
}

// resolveAccount returns the account id to store and, when it could be loaded, the account itself.
// A failed lookup keeps the link and only loses the display name; an account that does not exist is unlinked.
func (s *serviceImpl) resolveAccount(ctx context.Context, req dto.CreateBookingRequest) (*string, *userModel.User) {
	accountID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if accountID == "" && req.UserID != nil {
		accountID = *req.UserID
	}

	if accountID == "" {
		return nil, nil
	}

	account, err := s.userRepo.Get(ctx, shared.FilterByID(accountID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("user_id", accountID).Msg("failed to resolve booking account, keeping the link without a display name")

		return &accountID, nil
	}

	if account.ID == constant.Empty {
		log.Warn().Str("user_id", accountID).Msg("booking account not found, continuing as guest")

		return nil, nil
	}

	return &account.ID, &account
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.ParseDates()
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check-out date must be after check-in date")
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	accountID, account := s.resolveAccount(ctx, req)

	actor := constant.ContextGuest
	if accountID != nil {
		actor = *accountID
	}

	nights := pricing.Nights(checkIn, checkOut)
	booking := req.ToModel(accountID, checkIn, checkOut, pricing.TotalPrice(nights, room.PricePerNight), actor)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, "")

	detail := model.BookingDetail{
		Booking:           booking,
		RoomName:          room.Name,
		RoomNumber:        room.RoomNumber,
		RoomPricePerNight: room.PricePerNight,
	}

	go s.dispatch(context.WithoutCancel(ctx), detail, userModel.ResolveDisplayName(account, booking.FirstName))

	res.Message = MsgBookingCreated
	res.Booking.FromDetail(detail)

	scope.AddEvent("Booking created")

	return res, nil
}

// dispatch renders the receipt once and delivers both notifications and the booking event.
// Every failure is logged and swallowed: the booking is already stored.
func (s *serviceImpl) dispatch(ctx context.Context, detail model.BookingDetail, displayName string) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Mail.TimeoutSeconds)*time.Second)
	defer cancel()

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.dispatch")
	defer scope.End()

	fields := s.formatter.Fields(detail)

	var attachments []mailer.Attachment

	pdf, err := s.receipt.Render(detail.Booking, fields)
	if err != nil {
		log.Error().Err(err).Str("booking_id", detail.ID).Msg("failed to render receipt, sending notifications without it")
	} else {
		attachments = append(attachments, mailer.Attachment{
			FileName:    receipt.FileName(detail.ID),
			ContentType: constant.ContentTypePDF,
			Content:     pdf,
		})
	}

	s.notify(ctx, notification.AudienceGuest, displayName, detail.UserEmail, notification.SubjectGuest, fields, attachments)

	if s.cfg.Mail.AdminAddress == "" {
		log.Warn().Str("booking_id", detail.ID).Msg("no admin address configured, skipping admin notification")
	} else {
		s.notify(ctx, notification.AudienceAdmin, "", s.cfg.Mail.AdminAddress, notification.SubjectAdmin, fields, attachments)
	}

	s.publish(ctx, detail)
}

func (s *serviceImpl) notify(ctx context.Context, audience notification.Audience, name, to, subject string, fields []summary.Field, attachments []mailer.Attachment) {
	html, err := s.composer.Compose(audience, name, fields)
	if err != nil {
		log.Error().Err(err).Str("audience", string(audience)).Msg("failed to compose booking notification")

		return
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:          []string{to},
		Subject:     subject,
		HTML:        html,
		Attachments: attachments,
	})
	if err != nil {
		log.Error().Err(err).Str("audience", string(audience)).Msg("failed to send booking notification")
	}
}

func (s *serviceImpl) publish(ctx context.Context, detail model.BookingDetail) {
	var event dto.BookingResponse
	event.FromDetail(detail)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, kafka.Message{Key: detail.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("booking_id", detail.ID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheGetAllBooking, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetBookingsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		details, err := s.detailRepo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to list bookings")

			return res, fmt.Errorf("failed to get bookings: %w", err)
		}

		res.FromModels(details, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) GetByUser(ctx context.Context, userID string, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if userID == constant.Empty {
		return res, failure.Unauthorized("unauthorized")
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if len(filter.Filters) > 0 {
		scoped.Filters = append(scoped.Filters, filter)
	}

	return s.GetAll(ctx, req, scoped)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheCountBooking, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.detailRepo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count bookings")

			return 0, fmt.Errorf("failed to count bookings: %w", err)
		}

		return total, nil
	})
}

// authorize allows admins and the owning account.
func authorize(ctx context.Context, ownerID *string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return nil
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID != constant.Empty && ownerID != nil && *ownerID == userID {
		return nil
	}

	return failure.Forbidden("you do not have access to this booking")
}

func (s *serviceImpl) getDetail(ctx context.Context, id string) (model.BookingDetail, error) {
	if uuid.Validate(id) != nil {
		return model.BookingDetail{}, failure.NotFound(msgBookingNotFound)
	}

	detail, err := s.detailRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return detail, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return detail, failure.NotFound(msgBookingNotFound)
	}

	return detail, nil
}

// Get caches the booking independently of the caller, so ownership is checked on every read.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.id", id)

	res, err = cache.Remember(ctx, s.cache, shared.BuildCacheKey(model.CacheGetBooking, id), s.cfg.Cache.TTL, func(ctx context.Context) (res dto.BookingResponse, err error) {
		detail, err := s.getDetail(ctx, id)
		if err != nil {
			return res, err
		}

		res.FromDetail(detail)

		return res, nil
	})
	if err != nil {
		return res, err
	}

	if err = authorize(ctx, res.UserID); err != nil {
		return dto.BookingResponse{}, err
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getDetail(ctx, id); err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.getDetail(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromDetail(updated)

	return res, nil
}

// Receipt re-renders the receipt of a stored booking.
func (s *serviceImpl) Receipt(ctx context.Context, id string) (res dto.ReceiptFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Receipt")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.getDetail(ctx, id)
	if err != nil {
		return res, err
	}

	if err = authorize(ctx, detail.UserID); err != nil {
		return res, err
	}

	content, err := s.receipt.Render(detail.Booking, s.formatter.Fields(detail))
	if err != nil {
		log.Error().Err(err).Msg("failed to render receipt")

		return res, fmt.Errorf("failed to render receipt: %w", err)
	}

	return dto.ReceiptFile{FileName: receipt.FileName(detail.ID), Content: content}, nil
}
