package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/validator"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req SignupRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bindWith(c, c.ShouldBindJSON(obj))
}

// Bind picks the binding from the Content-Type (JSON, form or multipart).
func Bind(c *gin.Context, obj any) bool {
	return bindWith(c, c.ShouldBind(obj))
}

// BindQuery parses and validates the query string.
func BindQuery(c *gin.Context, obj any) bool {
	return bindWith(c, c.ShouldBindQuery(obj))
}

func bindWith(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	// Add error to context for middleware logging
	c.Error(err)

	// Check if it's a validation error
	if resp, ok := validator.ToErrorResponse(err); ok {
		c.JSON(http.StatusBadRequest, resp)
	} else {
		// JSON parsing error or other binding errors
		c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest)
	}
	return false
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	c.Error(err)

	// Send error response
	c.JSON(errResp.Status, errResp)
}

// RespondDomainError resolves err against the registered domain errors and
// falls back to InternalServerError.
func RespondDomainError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}

// ParseID reads a positive uint32 path parameter. Unparseable ids answer 404.
func ParseID(c *gin.Context, name string) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(sharedError.NotFound.Status, sharedError.NotFound)
		c.Abort()
		return 0, false
	}
	return uint32(id), true
}
