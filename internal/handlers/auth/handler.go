package auth

import (
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Get("/verify-email", handler.VerifyEmail)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/forgot-password", handler.ForgotPassword)
		r.Post("/reset-password", handler.ResetPassword)
		r.Get("/status", handler.Status)
		r.Post("/logout", handler.Logout)
		r.Put("/change-password", handler.ChangePassword)
	})
}

// Register handles account registration
// @Summary Register a new account
// @Description Create a guest account and send an email verification link.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.RegisterResponse] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// VerifyEmail confirms the address behind a verification link
// @Summary Verify email
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/auth/verify-email [get]
func (handler *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyEmail")
	defer scope.End()

	if err := handler.service.VerifyEmail(ctx, r.URL.Query().Get(constant.RequestParamToken)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify email")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Email verified successfully")
}

// Login handles account login
// @Summary Login
// @Description Exchange email and password for an access and refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken rotates the token pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ForgotPassword issues a reset link
// @Summary Forgot password
// @Description Always succeeds. A reset link is mailed when the address belongs to an account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Forgot Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/auth/forgot-password [post]
func (handler *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ForgotPassword")
	defer scope.End()

	req := dto.ForgotPasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ForgotPassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process forgot password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "If the email is registered, a reset link has been sent")
}

// ResetPassword sets a new password from a reset token
// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/auth/reset-password [post]
func (handler *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetPassword")
	defer scope.End()

	req := dto.ResetPasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ResetPassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reset password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password reset successful")
}

// Status echoes the identity behind the bearer token
// @Summary Auth status
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 401 {object} response.Error
// @Router /v1/auth/status [get]
// @Security BearerAuth
func (handler *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res := dto.StatusResponse{}
	res.UserID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	res.Email, _ = ctx.Value(constant.ContextKeyUserEmail).(string)
	res.Role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the presented access token
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Router /v1/auth/logout [post]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	token, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		response.WithError(w, failure.Unauthorized(err.Error()))

		return
	}

	if err := handler.service.Logout(ctx, token); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
