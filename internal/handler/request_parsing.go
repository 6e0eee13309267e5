package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Excommunicode/ShareHub/internal/platform/middleware"
	"github.com/Excommunicode/ShareHub/internal/platform/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads from/size with defaults 0/20 and caps size at 100. A negative from
// or non-positive size writes a 400 and returns ok=false.
func parsePagination(c *gin.Context) (from, size int, ok bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		response.BadRequest(c, "from must be a non-negative integer")
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		response.BadRequest(c, "size must be a positive integer")
		return 0, 0, false
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return from, size, true
}

// parseID reads a uuid path parameter, writing a 400 on failure.
func parseID(c *gin.Context, param, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "invalid "+entity+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the id set by middleware.RequireUserID.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing "+middleware.UserIDHeader+" header")
	}
	return id, ok
}

// bindJSON decodes the body into req and writes a 400 with readable field errors on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "malformed request body"
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(messages, "; ")
}
