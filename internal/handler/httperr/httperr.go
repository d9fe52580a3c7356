// Package httperr defines the public error envelope returned by the API and
// the helper that records the underlying cause on the gin context for the
// error-handling middleware.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON body clients receive on failure. Status travels with
// the value for middleware use but is not serialized.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	return resp
}

// AbortWithError writes the public envelope and keeps the original error on
// the context so logging sees the real cause, not the sanitized message.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
