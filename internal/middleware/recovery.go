package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rowjay/link-batch-shortener/internal/dto"
	"github.com/rs/zerolog/log"
)

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		event := log.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.RequestURI).
			Str("client_ip", c.ClientIP())

		resp := dto.ErrorResponse{
			Error: "Internal server error",
			Code:  http.StatusInternalServerError,
		}
		if msg, ok := recovered.(string); ok {
			event.Str("panic", msg).Msg("Panic recovered")
			resp.Message = msg
		} else {
			event.Interface("panic", recovered).Msg("Panic recovered")
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
	})
}
