package handler

import (
	"finledger/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// respondError writes the uniform {"erro": message} body.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// respondInternal records err for the request logger and hides it from the client.
func respondInternal(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	respondError(c, status, message)
}
