package httperr

import (
	"net/http"

	"studio-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	sentinel error
	status   int
	message  string
}

// statusTable is checked in order; the first sentinel err is marked with wins.
var statusTable = []mapping{
	{errs.ErrSlotConflict, http.StatusConflict, "Slot is already booked"},
	{errs.ErrAlreadyConfirmed, http.StatusConflict, "Booking is already confirmed"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "Booking is already cancelled"},
	{errs.ErrInvalidState, http.StatusConflict, "Operation not allowed in the current state"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrAccessDenied, http.StatusForbidden, "Access denied"},
	{errs.ErrInsufficientCredits, http.StatusPaymentRequired, "Insufficient credits"},
	{errs.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
	{errs.ErrStoreUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

// Status maps err to a response status and a client safe message.
// Validation errors carry their own message.
func Status(err error) (int, string) {
	if errs.Is(err, errs.ErrValidation) {
		return http.StatusBadRequest, validationMessage(err)
	}
	for _, m := range statusTable {
		if errs.Is(err, m.sentinel) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Abort responds with the status err maps to.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}

// validationMessage is the innermost message, which is the domain's own
// description of what was wrong.
func validationMessage(err error) string {
	msg := errs.UnwrapAll(err).Error()
	if msg == errs.ErrValidation.Error() {
		return "Invalid request"
	}
	return msg
}
