package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse defines the uniform structure for API responses. Code 0 is
// success; non-zero codes identify the failure class for mobile clients.
// Cached summary responses are stored in Redis in this exact shape so a
// cache hit can be served byte-for-byte.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// Unauthorized rejects a request whose token cleared the auth middleware
// but carried no usable user identity.
func Unauthorized(ctx *gin.Context) {
	Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
}
