// Package handler contains the HTTP endpoints. Each domain gets one
// handler struct with its store injected at construction time.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// pathID parses the :id route parameter. Writes the error response
// itself and returns ok=false on a bad value.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// storeErr maps store failures onto the response envelope. The
// fallback message covers everything that is not a missing row.
func storeErr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, store.ErrNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Record not found")
		return
	}
	_ = c.Error(err)
	util.Error(c, http.StatusInternalServerError, util.CodeServerErr, fallback)
}
