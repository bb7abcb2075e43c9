package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phardev/apodata-backend/internal/engine"
	"github.com/rs/zerolog/log"
)

// respondError maps engine validation failures to 400 and everything else
// to 500 with the generic message plus the underlying detail
func respondError(c *gin.Context, err error, message string) {
	var validationErr *engine.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
