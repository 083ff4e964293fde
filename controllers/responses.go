package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kendall-kelly/orders-api/middleware"
	"github.com/kendall-kelly/orders-api/services"
	log "github.com/sirupsen/logrus"
)

// Response messages
const (
	MsgMissingParam  = "Missing required param."
	MsgMalformedBody = "Malformed request body."
	MsgInternalError = "Internal server error."
	MsgUpdated       = "Data was successfully updated."
)

// bindJSON decodes the request body into req and runs its binding tags. An
// empty body binds as an empty object. It writes the 400 response itself
// and reports whether the handler may go on.
func bindJSON(c *gin.Context, req interface{}) bool {
	registerValidators()

	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgMissingParam})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgMalformedBody})
	}
	return false
}

// pathID reads the :id path parameter. An id that is not a positive integer
// cannot match a record, so it answers 404 like an unknown one.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

// respondError maps a service error to its HTTP response
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var constraintErr *services.ConstraintError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Messages()})
	case errors.As(err, &constraintErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": constraintErr.Message})
	default:
		_ = c.Error(err)
		log.WithError(err).
			WithField("request_id", middleware.GetRequestID(c)).
			Error("Unexpected error while handling request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": MsgInternalError})
	}
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}
