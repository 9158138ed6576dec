package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

// errBadRequest marks malformed or out-of-range request bodies.
var errBadRequest = errors.New("invalid request")

// persistenceWarning is returned alongside a change that is applied in memory but not saved.
const persistenceWarning = "change applied but could not be saved; it will be lost on restart"

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, errBadRequest),
		errors.Is(err, service.ErrEmptyValue),
		errors.Is(err, service.ErrInvalidUnitType),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyComment):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail aborts with the status matching err; middleware.ErrorHandler renders the body.
func fail(c *gin.Context, err error) {
	_ = c.AbortWithError(statusFor(err), err)
}

// badRequest wraps a binding or validation failure.
func badRequest(c *gin.Context, err error) {
	fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
}

// respond writes body with status. A persistence failure still succeeds and
// carries a warning; any other error fails the request.
func respond(c *gin.Context, status int, body gin.H, err error) {
	if err != nil {
		if !errors.Is(err, service.ErrPersistence) {
			fail(c, err)
			return
		}
		body["warning"] = persistenceWarning
	}
	c.JSON(status, body)
}
