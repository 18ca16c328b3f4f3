package api

import (
	"net/http"

	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/handler/validation"
	"studio-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func abortBind(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), validation.Message(err), nil)
}

func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrValidation), "Invalid "+label+" ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

// callerID aborts with 401 when the auth middleware did not run.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthenticated, "Unauthenticated", nil)
		return uuid.Nil, false
	}
	return accountID, true
}
