package api

import (
	"net/http"

	reqdto "studio-booking/internal/handler/dto/request"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: bookingCommands,
		queries:  bookingQueries,
	}
}

// @Summary Request booking
// @Description Reserve a slot on a resource. The booking starts pending until the provider confirms it.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	in, err := req.ToInput(ownerID, middleware.GetEmail(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	b, err := h.commands.RequestBooking(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Description Get a booking visible to the caller as owner or provider
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	accountID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	viewer := queries.Viewer{AccountID: accountID, ProviderIDs: middleware.GetProviderIDs(c)}
	view, err := h.queries.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description Every booking owned by the caller, newest slot first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	views, err := h.queries.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Cancel booking
// @Description Cancel one of the caller's own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	b, err := h.commands.CancelBooking(c.Request.Context(), id, ownerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary List resource bookings
// @Description Active bookings of a resource between two dates, inclusive
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param resourceId path string true "Resource ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{resourceId}/bookings [get]
func (h *BookingHandler) ListResourceBookings(c *gin.Context) {
	resourceID, ok := pathUUID(c, "resourceId", "resource")
	if !ok {
		return
	}

	var q reqdto.ListResourceBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err)
		return
	}
	from, to, err := q.Range()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	views, err := h.queries.ListByResource(c.Request.Context(), resourceID, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Confirm booking
// @Description Provider accepts a pending booking
// @Tags provider
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /providers/{providerId}/bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	b, err := h.commands.ConfirmBooking(c.Request.Context(), id, providerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel booking as provider
// @Description Provider cancels a pending or confirmed booking
// @Tags provider
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /providers/{providerId}/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBookingByProvider(c *gin.Context) {
	providerID, ok := pathUUID(c, middleware.ProviderIDParam, "provider")
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	b, err := h.commands.CancelBookingByProvider(c.Request.Context(), id, providerID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
