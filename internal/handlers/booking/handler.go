package booking

import (
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var sortableColumns = map[string]string{
	"created_at":  model.TableName + "." + constant.FieldCreatedAt,
	"check_in":    model.TableName + "." + model.FieldCheckIn,
	"check_out":   model.TableName + "." + model.FieldCheckOut,
	"total_price": model.TableName + "." + model.FieldTotalPrice,
}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/my-bookings", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/receipt", handler.GetBookingReceipt)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
	})
}

func listQuery(r *http.Request) (gDto.QueryParams, gDto.FilterGroup, error) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ResolveSort(sortableColumns, sortableColumns[constant.FieldCreatedAt])

	query := r.URL.Query()

	if roomID := query.Get(model.FieldRoomID); roomID != "" && uuid.Validate(roomID) != nil {
		return queryParams, gDto.FilterGroup{}, failure.BadRequestFromString(model.FieldRoomID + " must be a valid UUID")
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AppendIfSet(gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    query.Get(model.FieldStatus),
		Table:    model.TableName,
	})
	filterGroup.AppendIfSet(gDto.Filter{
		Field:    model.FieldPaymentStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    query.Get(model.FieldPaymentStatus),
		Table:    model.TableName,
	})
	filterGroup.AppendIfSet(gDto.Filter{
		Field:    model.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    query.Get(model.FieldRoomID),
		Table:    model.TableName,
	})

	return queryParams, filterGroup, nil
}

// CreateBooking prices and stores a booking, then mails the receipt in the background.
// @Summary Create a new booking
// @Description Create a booking. The total price is always computed server side. A bearer token is optional; when present the booking is linked to the caller.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.CreateBookingResponse "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithBody(writer, http.StatusCreated, res)
}

// GetBookings retrieves every booking with its room and account, newest first.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination. Admin only.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param payment_status query string false "Filter by payment status (pay-at-hotel, paid)"
// @Param room_id query string false "Filter by room ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams, filterGroup, err := listQuery(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves the caller's bookings, newest first.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of the caller's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/my-bookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	queryParams, filterGroup, err := listQuery(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetByUser(ctx, userID, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking visible to the caller.
// @Summary Get a booking by ID
// @Description Admins can read any booking, accounts only their own.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingReceipt re-renders the PDF receipt of a booking.
// @Summary Download a booking receipt
// @Tags Booking
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} file "Receipt PDF"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/receipt [get]
// @Security BearerAuth
func (handler *Handler) GetBookingReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingReceipt")
	defer scope.End()

	file, err := handler.service.Receipt(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render booking receipt")

		response.WithError(w, err)

		return
	}

	response.WithBytes(w, http.StatusOK, constant.ContentTypePDF, file.FileName, file.Content)
}

// UpdateBooking changes the lifecycle or payment status of a booking.
// @Summary Update a booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking updated"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking updated successfully")

	response.WithJSON(w, http.StatusOK, booking)
}
