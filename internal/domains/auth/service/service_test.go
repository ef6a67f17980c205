package service_test

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/mailer"
	mailerMocks "hotel/infras/mailer/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userModel "hotel/internal/domains/user/model"
	userMocks "hotel/internal/domains/user/repository/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc    service.Auth
	repo   *userMocks.MockUser
	cache  *cacheMocks.MockRedisCache
	mailer *mailerMocks.MockMailer
	jwt    *jwtMocks.MockJWT
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.HotelName = "Verse One Hotel"
	cfg.App.BaseURL = "https://hotel.example.com/"
	cfg.Mail.TimeoutSeconds = 5
	cfg.Token.ResetPasswordExpireMin = 15
	cfg.Token.VerifyEmailExpireMin = 1440

	f := fixture{
		repo:   userMocks.NewMockUser(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		mailer: mailerMocks.NewMockMailer(ctrl),
		jwt:    jwtMocks.NewMockJWT(ctrl),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.svc = service.New(f.repo, cfg, f.cache, f.mailer, mocks.NewOtel(), f.jwt)

	return f
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background work")
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account and mails a verification link", func(t *testing.T) {
		f := newFixture(t)
		sent := make(chan struct{})

		f.repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, "ada@example.com", user.Email)
				assert.Equal(t, constant.RoleUser, user.Role)
				assert.NoError(t, password.Verify("supersecret", user.Password))

				return nil
			})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 1440*60).
			DoAndReturn(func(_ context.Context, key string, value any, _ int) error {
				assert.True(t, strings.HasPrefix(key, "auth:verify:"))
				assert.NotEmpty(t, value)

				return nil
			})
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, message mailer.Message) error {
				defer close(sent)

				assert.Equal(t, []string{"ada@example.com"}, message.To)
				assert.Contains(t, message.HTML, "https://hotel.example.com/verify-email?token=")
				assert.Contains(t, message.HTML, "24 hours")

				return nil
			})

		res, err := f.svc.Register(context.Background(), dto.RegisterRequest{
			FirstName: "Ada",
			Email:     "Ada@Example.com",
			Password:  "supersecret",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Ada", res.FirstName)
		waitFor(t, sent)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().EmailTaken(gomock.Any(), "ada@example.com").Return(true, nil)

		_, err := f.svc.Register(context.Background(), dto.RegisterRequest{FirstName: "Ada", Email: "ada@example.com", Password: "supersecret"})

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	validUser := userModel.User{
		ID:        "user-id-123",
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  hashed(t, "correct-password"),
		Role:      constant.RoleUser,
		Active:    true,
	}

	inactive := validUser
	inactive.Active = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Ada@example.com", Password: "correct-password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByEmail(gomock.Any(), "Ada@example.com").Return(validUser, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), validUser.ID, validUser.Email, validUser.Role).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, userModel.FieldLastLogin)

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), "user:get:user-id-123").Return(nil).AnyTimes()
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "correct-password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "correct-password"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
			assert.Equal(t, validUser.ID, res.UserID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "expired").Return(nil, jwt.ErrExpiredToken)

	_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	claims := &jwt.Claims{UserID: "user-id-123", TokenID: "token-1"}

	f.jwt.EXPECT().ValidateToken(gomock.Any(), "access", jwt.AccessToken).Return(claims, nil)
	f.jwt.EXPECT().Revoke(gomock.Any(), claims).Return(nil)

	assert.NoError(t, f.svc.Logout(context.Background(), "access"))
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("unknown email still succeeds without sending", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"}))
	})

	t.Run("known email stores a 15 minute token and mails the link", func(t *testing.T) {
		f := newFixture(t)
		sent := make(chan struct{})

		f.repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "user-id-123", Email: "ada@example.com", Active: true}, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), "user-id-123", 15*60).Return(nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, message mailer.Message) error {
				defer close(sent)

				assert.Equal(t, "Password Reset", message.Subject)
				assert.Contains(t, message.HTML, "https://hotel.example.com/reset-password?token=")
				assert.Contains(t, message.HTML, "15 minutes")

				return errors.New("smtp down")
			})

		assert.NoError(t, f.svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "ada@example.com"}))
		waitFor(t, sent)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	raw, digest, err := password.NewToken()
	require.NoError(t, err)

	key := fmt.Sprintf("auth:reset:%s", digest)

	t.Run("valid token updates the password once", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Take(gomock.Any(), key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*string)) = "user-id-123"

				return nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, _ := fields["password"].(string)
				assert.NoError(t, password.Verify("brand-new-password", hash))

				return nil
			})

		assert.NoError(t, f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: raw, Password: "brand-new-password"}))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Take(gomock.Any(), key, gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))

		err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: raw, Password: "brand-new-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("a token is consumed by the first reset only", func(t *testing.T) {
		f := newFixture(t)

		first := f.cache.EXPECT().Take(gomock.Any(), key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*string)) = "user-id-123"

				return nil
			})
		f.cache.EXPECT().Take(gomock.Any(), key, gomock.Any()).
			Return(fmt.Errorf("failed to get cache value: %w", cache.Nil)).
			After(first)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

		req := dto.ResetPasswordRequest{Token: raw, Password: "brand-new-password"}

		require.NoError(t, f.svc.ResetPassword(context.Background(), req))

		err := f.svc.ResetPassword(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("store failure is not reported as an invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Take(gomock.Any(), key, gomock.Any()).Return(errors.New("connection refused"))

		err := f.svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{Token: raw, Password: "brand-new-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := userModel.User{ID: "user-id-123", Password: hashed(t, "old-password")}

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "new-password"}, user.ID)

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}, user.ID))
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Take(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*(value.(*string)) = "user-id-123"

			return nil
		})
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[userModel.FieldIsVerified])

			return nil
		})

	assert.NoError(t, f.svc.VerifyEmail(context.Background(), "raw-token"))
}
