package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const internalErrorText = "Internal Server Error"

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleDivine decodes the envelope and dispatches it.
// defaultDomain fills an empty domain field.
func handleDivine(router Dispatcher, defaultDomain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req core.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, core.ErrorResponse{Error: "Invalid JSON Body", Details: err.Error()})
			return
		}
		if req.Domain == "" {
			req.Domain = defaultDomain
		}

		resp, err := router.Dispatch(c.Request.Context(), &req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func writeError(c *gin.Context, err error) {
	if ie, ok := core.AsInputError(err); ok {
		c.JSON(http.StatusBadRequest, core.ErrorResponse{Error: ie.Message, Details: ie.Details})
		return
	}
	log.FromCtx(c.Request.Context()).Error().Err(err).Msg("request failed")
	c.JSON(http.StatusInternalServerError, core.ErrorResponse{Error: internalErrorText})
}
