package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/sangkips/comanda-pos/pkg/utils"
)

// ParseUUIDParam reads a UUID path parameter
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// ParseOrderNumberParam reads the :orderNumber path parameter
func ParseOrderNumberParam(c *gin.Context) (int64, error) {
	n, err := strconv.ParseInt(c.Param("orderNumber"), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.NewBadRequestError("Invalid order number")
	}
	return n, nil
}

// ParseDay parses a YYYY-MM-DD value as midnight in loc. An empty value
// returns now in loc.
func ParseDay(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}
