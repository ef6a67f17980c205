package service_test

import (
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/mailer"
	mailerMocks "hotel/infras/mailer/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	contactMocks "hotel/internal/domains/contact/repository/mocks"
	"hotel/internal/domains/contact/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const adminMail = "frontdesk@hotel.example.com"

type fixture struct {
	svc    service.Contact
	repo   *contactMocks.MockContact
	cache  *cacheMocks.MockRedisCache
	mailer *mailerMocks.MockMailer
	kafka  *kafkaMocks.MockClient
}

func newFixture(t *testing.T, adminAddress string) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Mail.TimeoutSeconds = 5
	cfg.Mail.AdminAddress = adminAddress
	cfg.Kafka.Topics.ContactCreated = "contact.created"

	f := fixture{
		repo:   contactMocks.NewMockContact(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		mailer: mailerMocks.NewMockMailer(ctrl),
		kafka:  kafkaMocks.NewMockClient(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.mailer, f.kafka)

	return f
}

func await(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for contact event")
	}
}

func TestCreate(t *testing.T) {
	number := "+62 812 3456"

	t.Run("stores the message and forwards it", func(t *testing.T) {
		f := newFixture(t, adminMail)
		done := make(chan struct{}, 1)

		var (
			stored model.Contact
			sent   mailer.Message
		)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, contact model.Contact) error {
				stored = contact

				return nil
			})
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, message mailer.Message) error {
				sent = message

				return nil
			})
		f.kafka.EXPECT().SendMessages(gomock.Any(), "contact.created", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, stored.ID, messages[0].Key)

				done <- struct{}{}

				return nil
			})

		res, err := f.svc.Create(context.Background(), dto.CreateContactRequest{
			Email:    " Ada@Example.com ",
			FullName: "Ada Lovelace",
			Message:  "Is breakfast included?",
			Number:   &number,
		})
		require.NoError(t, err)

		await(t, done)

		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "ada@example.com", stored.Email)
		assert.Equal(t, constant.ContextGuest, stored.CreatedBy)
		assert.Equal(t, []string{adminMail}, sent.To)
		assert.Contains(t, sent.HTML, "Ada Lovelace")
		assert.Contains(t, sent.HTML, number)
		assert.Contains(t, sent.HTML, "Is breakfast included?")
	})

	t.Run("mail failure does not fail the request", func(t *testing.T) {
		f := newFixture(t, adminMail)
		done := make(chan struct{}, 1)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, ...kafka.Message) error {
				done <- struct{}{}

				return errors.New("broker down")
			})

		_, err := f.svc.Create(context.Background(), dto.CreateContactRequest{Email: "a@b.co", FullName: "A", Message: "hi"})
		require.NoError(t, err)

		await(t, done)
	})

	t.Run("no admin address skips the mail", func(t *testing.T) {
		f := newFixture(t, "")
		done := make(chan struct{}, 1)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, ...kafka.Message) error {
				done <- struct{}{}

				return nil
			})

		_, err := f.svc.Create(context.Background(), dto.CreateContactRequest{Email: "a@b.co", FullName: "A", Message: "hi"})
		require.NoError(t, err)

		await(t, done)
	})

	t.Run("insert failure", func(t *testing.T) {
		f := newFixture(t, adminMail)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
		f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Create(context.Background(), dto.CreateContactRequest{Email: "a@b.co", FullName: "A", Message: "hi"})
		require.Error(t, err)
	})
}

func TestGetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("reads through the cache", func(t *testing.T) {
		f := newFixture(t, adminMail)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Contact{{ID: "c-2"}, {ID: "c-1"}}, nil)

		res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)

		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		require.Len(t, res.Contacts, 2)
		assert.Equal(t, "c-2", res.Contacts[0].ID)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t, adminMail)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t, adminMail)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.Error(t, err)
	})
}
