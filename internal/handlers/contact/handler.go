package contact

import (
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var sortableColumns = map[string]string{
	"created_at": model.TableName + "." + constant.FieldCreatedAt,
	"full_name":  model.TableName + "." + model.FieldFullName,
	"email":      model.TableName + "." + model.FieldEmail,
}

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
	})
}

// CreateContact stores a message from the public contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} response.Message "Contact message received"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, service.MsgContactReceived)
}

// GetContacts lists contact messages, newest first.
// @Summary Get contact messages
// @Tags Contact
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by sender email"
// @Success 200 {object} response.Data[dto.GetContactsResponse] "List of contact messages"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ResolveSort(sortableColumns, sortableColumns[constant.FieldCreatedAt])

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AppendIfSet(gDto.Filter{
		Field:    model.FieldEmail,
		Operator: gDto.FilterOperatorEq,
		Value:    r.URL.Query().Get(model.FieldEmail),
		Table:    model.TableName,
	})

	contacts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contacts)
}
