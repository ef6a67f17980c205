package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"time"

	"github.com/rs/zerolog/log"
)

const MsgContactReceived = "Contact message received successfully"

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContactsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo   repository.Contact
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	mailer mailer.Mailer
	kafka  kafka.Client
}

func New(repo repository.Contact, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, mailer mailer.Mailer, kafka kafka.Client) Contact {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		mailer: mailer,
		kafka:  kafka,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == constant.Empty {
		actor = constant.ContextGuest
	}

	contact := req.ToModel(actor)

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create contact")

		return res, fmt.Errorf("failed to create contact: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheGetAllContact)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheCountContact)

	go s.forward(context.WithoutCancel(ctx), contact)

	res.FromModel(contact)

	scope.AddEvent("Contact created")

	return res, nil
}

// forward notifies the front desk and publishes the contact event. Failures are logged only.
func (s *serviceImpl) forward(ctx context.Context, contact model.Contact) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Mail.TimeoutSeconds)*time.Second)
	defer cancel()

	if s.cfg.Mail.AdminAddress == "" {
		log.Warn().Str("contact_id", contact.ID).Msg("no admin address configured, skipping contact notification")
	} else if html, err := renderContact(contact); err != nil {
		log.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to render contact notification")
	} else {
		err = s.mailer.Send(ctx, mailer.Message{
			To:      []string{s.cfg.Mail.AdminAddress},
			Subject: subjectNewContact,
			HTML:    html,
		})
		if err != nil {
			log.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to send contact notification")
		}
	}

	var event dto.ContactResponse
	event.FromModel(contact)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.ContactCreated, kafka.Message{Key: contact.ID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to publish contact event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheGetAllContact, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (res dto.GetContactsResponse, err error) {
		total, err := s.Count(ctx, req, filter)
		if err != nil {
			return res, err
		}

		contacts, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to list contacts")

			return res, fmt.Errorf("failed to get contacts: %w", err)
		}

		res.FromModels(contacts, total, req.Limit)

		return res, nil
	})
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Contact.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := shared.BuildCacheKeyWithQuery(model.CacheCountContact, req, filter)

	return cache.Remember(ctx, s.cache, key, s.cfg.Cache.TTL, func(ctx context.Context) (int, error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count contacts")

			return 0, fmt.Errorf("failed to count contacts: %w", err)
		}

		return total, nil
	})
}
