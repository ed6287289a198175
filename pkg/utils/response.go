package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error shape clients ever see. Internal error text is
// logged by the caller and never copied here.
type ErrorBody struct {
	Error string `json:"error"`
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Error: message})
}
