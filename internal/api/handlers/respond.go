package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/pkg/errors"
)

// respondError maps core errors onto HTTP statuses:
// validation/mismatch -> 400, not found -> 404, auth config -> 500,
// provider -> the provider's own status. Anything untyped is a 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		body := gin.H{"error": e.Error()}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case *errors.ErrItemRestaurantMismatch:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrAuthConfiguration:
		logger.Error("Provider auth misconfigured", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": e.Error()})
	case *errors.ErrProvider:
		status := e.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": e.Message, "provider_status": e.StatusCode})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
