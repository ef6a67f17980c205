package service_test

import (
	"bytes"
	"context"
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	storageMocks "hotel/infras/storage/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	roomMocks "hotel/internal/domains/room/repository/mocks"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc     service.Room
	repo    *roomMocks.MockRoom
	cache   *cacheMocks.MockRedisCache
	storage *storageMocks.MockStorage
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Storage.Directory = "rooms"

	f := fixture{
		repo:    roomMocks.NewMockRoom(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		storage: storageMocks.NewMockStorage(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.storage)

	return f
}

// imageHeaders builds real multipart headers so the service can open them.
func imageHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, name := range names {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		header.Set("Content-Type", "image/png")

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write([]byte("\x89PNG fake image"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File[constant.FormImages]
}

func strPtr(s string) *string {
	return &s
}

func TestRoomService_Create(t *testing.T) {
	t.Run("uploads images in order and stores the room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().RoomNumberTaken(gomock.Any(), "101", "").Return(false, nil)
		f.storage.EXPECT().UploadFile(gomock.Any(), "rooms", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ multipart.File, header *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.example.com/rooms/" + header.Filename, nil
			}).Times(2)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, pq.StringArray{"https://cdn.example.com/rooms/a.png", "https://cdn.example.com/rooms/b.png"}, room.Images)
				assert.True(t, room.IsAvailable)

				return nil
			})

		res, err := f.svc.Create(context.Background(), dto.CreateRoomRequest{
			Name:              "Deluxe",
			PricePerNight:     100,
			Description:       "Sea view",
			MaxNumberOfAdults: 2,
			RoomNumber:        strPtr("101"),
			Features:          []string{"WiFi"},
			Images:            imageHeaders(t, "a.png", "b.png"),
		})

		require.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Len(t, res.Images, 2)
	})

	t.Run("duplicate room number", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().RoomNumberTaken(gomock.Any(), "101", "").Return(true, nil)

		_, err := f.svc.Create(context.Background(), dto.CreateRoomRequest{RoomNumber: strPtr("101"), Images: imageHeaders(t, "a.png")})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("insert failure removes uploaded images", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/rooms/a.png", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.storage.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/rooms/a.png").Return(nil)

		_, err := f.svc.Create(context.Background(), dto.CreateRoomRequest{Name: "Deluxe", Images: imageHeaders(t, "a.png")})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestRoomService_Update(t *testing.T) {
	current := model.Room{ID: "room-1", Name: "Deluxe", Images: pq.StringArray{"https://cdn.example.com/rooms/old.png"}}

	t.Run("new images are prepended", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.storage.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/rooms/new.png", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.StringArray{"https://cdn.example.com/rooms/new.png", "https://cdn.example.com/rooms/old.png"}, fields[model.FieldImages])
				assert.Equal(t, "Suite", fields[model.FieldName])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1", Name: "Suite"}, nil)

		res, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Name: strPtr("Suite"), Images: imageHeaders(t, "new.png")}, "room-1")

		require.NoError(t, err)
		assert.Equal(t, "Suite", res.Name)
	})

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{}, "room-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateRoomRequest{Name: strPtr("Suite")}, "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRoomService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "room:get:room-1", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1", Name: "Deluxe", PricePerNight: 100}, nil)

	res, err := f.svc.Get(context.Background(), "room-1")

	require.NoError(t, err)
	assert.Equal(t, 100.0, res.PricePerNight)
	assert.Equal(t, []string{}, res.Images)
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "room-1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(context.Background(), "room-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestSplitFeatures(t *testing.T) {
	assert.Equal(t, []string{"WiFi", "TV", "Balcony"}, dto.SplitFeatures([]string{"WiFi, TV", " Balcony ", ""}))
	assert.Equal(t, []string{}, dto.SplitFeatures(nil))
}
