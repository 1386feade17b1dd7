package helper_util

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const maxPageLimit = 1000

func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		return 0, 0, err
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, err
	}
	if limit <= 0 || limit > maxPageLimit || offset < 0 {
		return 0, 0, fmt.Errorf("limit must be in 1..%d and offset non-negative", maxPageLimit)
	}
	return limit, offset, nil
}

// GetTimeRangeParams reads from/to as RFC3339. The range defaults to the
// last day.
func GetTimeRangeParams(c *gin.Context) (from time.Time, to time.Time, err error) {
	now := time.Now().UTC()
	to, err = ParseTimeOrDefault(c.Query("to"), now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err = ParseTimeOrDefault(c.Query("from"), to.Add(-24*time.Hour))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must not be after to")
	}
	return from, to, nil
}
