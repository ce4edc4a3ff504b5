package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message   string `json:"message"`
		Code      string `json:"code,omitempty"`
		Guidance  string `json:"guidance,omitempty"`
		Retryable bool   `json:"retryable,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Body carries the optional fields of an error envelope.
type Body struct {
	Code      string
	Guidance  string
	Retryable bool
	Detail    any
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	AbortWithBody(c, status, err, msg, Body{Detail: detail})
}

func AbortWithBody(c *gin.Context, status int, err error, msg string, body Body) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = body.Code
	resp.Error.Guidance = body.Guidance
	resp.Error.Retryable = body.Retryable
	resp.Detail = body.Detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
