package room

import (
	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryAvailable = "available"
	queryMinAdults = "min_adults"
)

var sortableColumns = map[string]string{
	"created_at":           model.TableName + "." + constant.FieldCreatedAt,
	"name":                 model.TableName + "." + model.FieldName,
	"price_per_night":      model.TableName + "." + model.FieldPricePerNight,
	"max_number_of_adults": model.TableName + "." + model.FieldMaxNumberOfAdults,
}

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

func parseForm(request *http.Request) error {
	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(err)
	}

	return nil
}

// formValue returns nil when the field was not sent at all.
func formValue(request *http.Request, key string) *string {
	values, ok := request.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	value := strings.TrimSpace(values[0])

	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room with one to five images. Admin only.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param price_per_night formData number true "Price per night"
// @Param description formData string true "Description"
// @Param max_number_of_adults formData integer true "Capacity"
// @Param room_number formData string false "Room number"
// @Param features formData string false "Comma separated features"
// @Param is_available formData boolean false "Availability"
// @Param images formData file true "Room images"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := parseForm(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{
		Name:        deref(formValue(request, model.FieldName)),
		Description: deref(formValue(request, model.FieldDescription)),
		RoomNumber:  formValue(request, model.FieldRoomNumber),
		Features:    dto.SplitFeatures(request.MultipartForm.Value[model.FieldFeatures]),
		IsAvailable: shared.ConvertStringToBool(deref(formValue(request, model.FieldIsAvailable))),
		Images:      request.MultipartForm.File[constant.FormImages],
	}

	if price := shared.ConvertStringToFloat(deref(formValue(request, model.FieldPricePerNight))); price != nil {
		req.PricePerNight = *price
	}

	if adults := shared.ConvertStringToInt(deref(formValue(request, model.FieldMaxNumberOfAdults))); adults != nil {
		req.MaxNumberOfAdults = *adults
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms retrieves rooms based on query parameters.
// @Summary Get all rooms
// @Description Retrieve rooms with optional filtering and pagination.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param available query boolean false "Filter by availability"
// @Param min_adults query integer false "Minimum capacity"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ResolveSort(sortableColumns, sortableColumns[constant.FieldCreatedAt])

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AppendIfSet(gDto.Filter{
		Field:    model.FieldName,
		Operator: gDto.FilterOperatorLike,
		Value:    query.Get(model.FieldName),
		Table:    model.TableName,
	})

	if available := shared.ConvertStringToBool(query.Get(queryAvailable)); available != nil {
		filterGroup.AppendIfSet(gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	if minAdults := shared.ConvertStringToInt(query.Get(queryMinAdults)); minAdults != nil {
		filterGroup.AppendIfSet(gDto.Filter{
			Field:    model.FieldMaxNumberOfAdults,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *minAdults,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom applies a partial update; new images are prepended.
// @Summary Update a room by ID
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param price_per_night formData number false "Price per night"
// @Param description formData string false "Description"
// @Param max_number_of_adults formData integer false "Capacity"
// @Param room_number formData string false "Room number"
// @Param features formData string false "Comma separated features"
// @Param is_available formData boolean false "Availability"
// @Param images formData file false "Additional images"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := parseForm(request); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateRoomRequest{
		Name:        formValue(request, model.FieldName),
		Description: formValue(request, model.FieldDescription),
		RoomNumber:  formValue(request, model.FieldRoomNumber),
		Images:      request.MultipartForm.File[constant.FormImages],
	}

	if features, ok := request.MultipartForm.Value[model.FieldFeatures]; ok {
		req.Features = dto.SplitFeatures(features)
	}

	if value := formValue(request, model.FieldPricePerNight); value != nil {
		req.PricePerNight = shared.ConvertStringToFloat(*value)
		if req.PricePerNight == nil {
			response.WithError(writer, failure.BadRequestFromString("price_per_night must be a number"))

			return
		}
	}

	if value := formValue(request, model.FieldMaxNumberOfAdults); value != nil {
		req.MaxNumberOfAdults = shared.ConvertStringToInt(*value)
		if req.MaxNumberOfAdults == nil {
			response.WithError(writer, failure.BadRequestFromString("max_number_of_adults must be a whole number"))

			return
		}
	}

	if value := formValue(request, model.FieldIsAvailable); value != nil {
		req.IsAvailable = shared.ConvertStringToBool(*value)
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithJSON(writer, http.StatusOK, room)
}

// DeleteRoom deletes a room and its stored images.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
