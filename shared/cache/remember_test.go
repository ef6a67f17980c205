package cache_test

import (
	"context"
	"errors"
	"hotel/shared/cache"
	"hotel/shared/cache/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type roomSummary struct {
	Name  string
	Price float64
}

func TestRemember(t *testing.T) {
	t.Run("hit skips the loader", func(t *testing.T) {
		redisCache := mocks.NewMockRedisCache(gomock.NewController(t))

		redisCache.EXPECT().Get(gomock.Any(), "room:get:r-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dest any) error {
				*(dest.(*roomSummary)) = roomSummary{Name: "Suite", Price: 149}

				return nil
			})

		got, err := cache.Remember(context.Background(), redisCache, "room:get:r-1", 60, func(context.Context) (roomSummary, error) {
			t.Fatal("loader must not run on a hit")

			return roomSummary{}, nil
		})

		require.NoError(t, err)
		assert.Equal(t, roomSummary{Name: "Suite", Price: 149}, got)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		redisCache := mocks.NewMockRedisCache(gomock.NewController(t))
		saved := make(chan any, 1)

		redisCache.EXPECT().Get(gomock.Any(), "room:count", gomock.Any()).Return(cache.Nil)
		redisCache.EXPECT().Save(gomock.Any(), "room:count", 7, 60).
			DoAndReturn(func(_ context.Context, _ string, value any, _ int) error {
				saved <- value

				return nil
			})

		got, err := cache.Remember(context.Background(), redisCache, "room:count", 60, func(context.Context) (int, error) {
			return 7, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 7, got)
		assert.Equal(t, 7, <-saved)
	})

	t.Run("loader error is returned and nothing is stored", func(t *testing.T) {
		redisCache := mocks.NewMockRedisCache(gomock.NewController(t))
		boom := errors.New("database down")

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		_, err := cache.Remember(context.Background(), redisCache, "room:gets", 60, func(context.Context) ([]roomSummary, error) {
			return nil, boom
		})

		assert.ErrorIs(t, err, boom)
	})
}
