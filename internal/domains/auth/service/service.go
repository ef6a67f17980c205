package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheVerifyEmail   = "auth:verify"
	cacheResetPassword = "auth:reset"

	msgInvalidCredentials = "invalid email or password"
	msgInvalidToken       = "invalid or expired token"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	mailer     mailer.Mailer
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, mailer mailer.Mailer, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		mailer:     mailer,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	exists, err := s.userRepo.EmailTaken(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("email already registered")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, userModel.CacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, userModel.CacheCountUser)

		s.sendVerification(c, user)
	}()

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) sendVerification(ctx context.Context, user userModel.User) {
	raw, digest, err := password.NewToken()
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to create verification token")

		return
	}

	ttl := s.cfg.Token.VerifyEmailExpireMin * constant.MinutesToSeconds
	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheVerifyEmail, digest), user.ID, ttl); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to store verification token")

		return
	}

	html, err := render(verifyEmailTemplate, linkMail{
		HotelName: s.cfg.App.HotelName,
		Name:      user.FirstName,
		Link:      tokenLink(s.cfg.App.BaseURL, pathVerifyEmail, raw),
		ExpiresIn: describeMinutes(s.cfg.Token.VerifyEmailExpireMin),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to render verification mail")

		return
	}

	s.deliver(ctx, mailer.Message{To: []string{user.Email}, Subject: subjectVerifyEmail, HTML: html})
}

func (s *serviceImpl) deliver(ctx context.Context, message mailer.Message) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Mail.TimeoutSeconds)*time.Second)
	defer cancel()

	if err := s.mailer.Send(ctx, message); err != nil {
		log.Error().Err(err).Str("subject", message.Subject).Msg("failed to send mail")
	}
}

// takeToken resolves a one-time token to the account it was issued for and consumes it atomically.
func (s *serviceImpl) takeToken(ctx context.Context, prefix, raw string) (string, error) {
	var userID string

	if err := s.cache.Take(ctx, shared.BuildCacheKey(prefix, password.HashToken(raw)), &userID); err != nil {
		if errors.Is(err, cache.Nil) {
			return "", failure.BadRequestFromString(msgInvalidToken)
		}

		log.Error().Err(err).Msg("failed to read one-time token")

		return "", fmt.Errorf("failed to read one-time token: %w", err)
	}

	return userID, nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(token) == "" {
		return failure.BadRequestFromString(msgInvalidToken)
	}

	userID, err := s.takeToken(ctx, cacheVerifyEmail, token)
	if err != nil {
		return err
	}

	fields := shared.TransformFields(dto.UpdateVerifiedRequest{IsVerified: true}, userID)
	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark user verified")

		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.forgetUser(ctx, userID)

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(msgInvalidCredentials)
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(msgInvalidCredentials)
	}

	if !user.Active {
		return res, failure.BadRequestFromString("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	if err := s.userRepo.Update(ctx, shared.TransformFields(lastLogin, user.ID), shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, fmt.Errorf("failed to update last login: %w", err)
	}

	s.forgetUser(ctx, user.ID)

	res.FromTokenPair(tokenPair, user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, accessToken string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(ctx, accessToken, jwt.AccessToken)
	if err != nil {
		return failure.Unauthorized("invalid token")
	}

	if err := s.jwtService.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke token")

		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// ForgotPassword never reveals whether the email is registered.
func (s *serviceImpl) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForgotPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" || !user.Active {
		log.Info().Str("email", req.Email).Msg("password reset requested for unknown account")

		return nil
	}

	raw, digest, err := password.NewToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to create reset token")

		return fmt.Errorf("failed to create reset token: %w", err)
	}

	ttl := s.cfg.Token.ResetPasswordExpireMin * constant.MinutesToSeconds
	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheResetPassword, digest), user.ID, ttl); err != nil {
		log.Error().Err(err).Msg("failed to store reset token")

		return fmt.Errorf("failed to store reset token: %w", err)
	}

	html, err := render(resetPasswordTemplate, linkMail{
		HotelName: s.cfg.App.HotelName,
		Name:      user.FirstName,
		Link:      tokenLink(s.cfg.App.BaseURL, pathResetPassword, raw),
		ExpiresIn: describeMinutes(s.cfg.Token.ResetPasswordExpireMin),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to render reset mail")

		return fmt.Errorf("failed to render reset mail: %w", err)
	}

	go s.deliver(context.WithoutCancel(ctx), mailer.Message{To: []string{user.Email}, Subject: subjectResetPassword, HTML: html})

	return nil
}

func (s *serviceImpl) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResetPassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, err := s.takeToken(ctx, cacheResetPassword, req.Token)
	if err != nil {
		return err
	}

	return s.setPassword(ctx, userID, req.Password, userID)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	return s.setPassword(ctx, userID, req.NewPassword, userID)
}

func (s *serviceImpl) setPassword(ctx context.Context, userID, plain, actor string) error {
	hashedPassword, err := password.Hash(plain)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, actor)
	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) forgetUser(ctx context.Context, userID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(userModel.CacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, userModel.CacheGetAllUser)
	}()
}
