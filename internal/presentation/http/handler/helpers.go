package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam parses a numeric path parameter. Returns 0 and false when the
// value is missing or not a positive integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
