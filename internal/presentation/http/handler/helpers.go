package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// parseID reads a uuid path parameter. On failure it writes a 400 and returns false.
func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseQuantity reads the quantity path parameter
func parseQuantity(c *gin.Context) (int, bool) {
	quantity, err := strconv.Atoi(c.Param("quantity"))
	if err != nil {
		response.Error(c, apperror.NewInvalidArgumentError("Quantity must be a whole number"))
		return 0, false
	}
	return quantity, true
}

// parseTime accepts RFC 3339 timestamps and plain dates. A plain date is
// midnight UTC; bounds are compared as full timestamps.
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(time.DateOnly, value)
}
