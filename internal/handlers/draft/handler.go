package draft

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/otel"
	availabilityService "frontdesk/internal/domains/availability/service"
	"frontdesk/internal/domains/booking/draft"
	bookingDto "frontdesk/internal/domains/booking/model/dto"
	bookingService "frontdesk/internal/domains/booking/service"
	customerModel "frontdesk/internal/domains/customer/model"
	customerService "frontdesk/internal/domains/customer/service"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
	"frontdesk/shared/validator"
	"frontdesk/transport/http/response"
)

// StayRequest sets the stay window and party size. Dates are RFC 3339
// instants.
type StayRequest struct {
	CheckIn  time.Time `json:"checkIn" validate:"required"`
	CheckOut time.Time `json:"checkOut" validate:"required,gtfield=CheckIn"`
	Guests   int       `json:"guests" validate:"required,min=1"`
}

type SelectRoomRequest struct {
	RoomID int64 `json:"roomId" validate:"required"`
}

type ExtraBedsRequest struct {
	Count int `json:"count" validate:"min=0"`
}

type CustomerRequest struct {
	CustomerID *int64 `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
}

type CustomerSearchRequest struct {
	Query string `json:"query"`
}

type PickCustomerRequest struct {
	CustomerID int64  `json:"customerId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
}

// Handler exposes draft booking sessions. A session is the server-side
// counterpart of one open booking form; mutations return the post-mutation
// snapshot, and results of in-flight availability or customer lookups appear
// on a subsequent read.
type Handler struct {
	registry     *draft.Registry
	bookings     bookingService.Booking
	availability availabilityService.Availability
	customers    customerService.Customer
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	registry *draft.Registry,
	bookings bookingService.Booking,
	availability availabilityService.Availability,
	customers customerService.Customer,
	cfg *config.Config,
	otel otel.Otel,
) Handler {
	return Handler{
		registry:     registry,
		bookings:     bookings,
		availability: availability,
		customers:    customers,
		cfg:          cfg,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/drafts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDraft)
		routerGroup.Get("/{id}", handler.GetDraft)
		routerGroup.Delete("/{id}", handler.DiscardDraft)
		routerGroup.Put("/{id}/stay", handler.SetStay)
		routerGroup.Post("/{id}/refresh", handler.RefreshAvailability)
		routerGroup.Put("/{id}/room", handler.SelectRoom)
		routerGroup.Delete("/{id}/room", handler.ClearRoom)
		routerGroup.Put("/{id}/extra-beds", handler.SetExtraBeds)
		routerGroup.Put("/{id}/customer", handler.SetCustomer)
		routerGroup.Post("/{id}/customer/search", handler.SearchCustomers)
		routerGroup.Post("/{id}/customer/pick", handler.PickCustomer)
		routerGroup.Post("/{id}/submit", handler.SubmitDraft)
	})
}

func (handler *Handler) deps() draft.Deps {
	return draft.Deps{
		Finder:   handler.availability,
		Searcher: handler.customers,
		Gateway:  handler.bookings,
	}
}

func (handler *Handler) options() draft.Options {
	return draft.Options{
		SearchDebounce: time.Duration(handler.cfg.Search.DebounceMillis) * time.Millisecond,
		MinQueryLength: handler.cfg.Search.MinQueryLength,
	}
}

// CreateDraft opens a new session. With a bookingId query parameter the
// draft is hydrated from that booking for editing and its availability is
// requeried; otherwise the draft starts blank.
func (handler *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDraft")
	defer scope.End()

	bookingID := r.URL.Query().Get(constant.RequestParamBookingID)

	var session *draft.Session

	if bookingID == "" {
		session = draft.New(handler.deps(), handler.options())
	} else {
		matches, err := handler.bookings.Search(ctx, bookingDto.SearchBookingsRequest{BookingID: bookingID})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to load booking for draft")

			response.WithError(w, err)

			return
		}

		if len(matches) == 0 {
			response.WithError(w, failure.NotFound("booking"))

			return
		}

		session = draft.NewFromBooking(matches[0], handler.deps(), handler.options())
		session.RefreshAvailability(ctx)
	}

	handler.registry.Add(session)

	scope.AddEvent("Draft session created " + session.ID())

	response.WithJSON(w, http.StatusCreated, session.Snapshot())
}

func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DiscardDraft")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	handler.registry.Remove(session.ID())

	response.WithMessage(w, http.StatusOK, "Draft discarded")
}

func (handler *Handler) SetStay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStay")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := StayRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session.SetStay(ctx, req.CheckIn, req.CheckOut, req.Guests)

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) RefreshAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshAvailability")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	session.RefreshAvailability(ctx)

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) SelectRoom(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectRoom")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := SelectRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := session.SelectRoom(req.RoomID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("roomID", req.RoomID).Msg("failed to select room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) ClearRoom(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearRoom")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	session.ClearRoom()

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) SetExtraBeds(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetExtraBeds")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := ExtraBedsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := session.SetExtraBeds(req.Count); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetCustomer")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := CustomerRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session.SetCustomer(draft.CustomerInfo{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

// SearchCustomers kicks off the debounced lookup; matches land on the
// snapshot once the backend answers.
func (handler *Handler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchCustomers")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := CustomerSearchRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session.SearchCustomers(ctx, req.Query)

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

func (handler *Handler) PickCustomer(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PickCustomer")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := PickCustomerRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session.PickCustomer(customerModel.Customer{
		CustomerID: req.CustomerID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})

	response.WithJSON(w, http.StatusOK, session.Snapshot())
}

// SubmitDraft commits the draft. On success the session is retired; on
// failure it stays registered so the user can fix it up and resubmit.
func (handler *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitDraft")
	defer scope.End()

	session, err := handler.session(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, err := session.Submit(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("draftID", session.ID()).Msg("failed to submit draft")

		response.WithError(w, err)

		return
	}

	handler.registry.Remove(session.ID())

	scope.AddEvent("Draft submitted successfully " + session.ID())

	response.WithJSON(w, http.StatusCreated, booking)
}

func (handler *Handler) session(r *http.Request) (*draft.Session, error) {
	id := chi.URLParam(r, constant.RequestParamID)

	session, ok := handler.registry.Get(id)
	if !ok {
		return nil, failure.NotFound("draft session") //nolint:wrapcheck
	}

	return session, nil
}
