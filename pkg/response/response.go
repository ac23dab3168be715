// Package response provides helpers for the catalog API's wire format.
// Error bodies carry a single "detail" key: a plain string for not-found
// and server faults, or a list of per-field entries for validation faults.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody is the error response envelope.
type ErrorBody struct {
	Detail interface{} `json:"detail"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// NotFound sends a 404 with a fixed human-readable detail message.
func NotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, ErrorBody{Detail: detail})
}

// ServerError sends a 500 with a detail message.
func ServerError(c *gin.Context, detail string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Detail: detail})
}

// TooManyRequests sends a 429 with a detail message.
func TooManyRequests(c *gin.Context, detail string) {
	c.JSON(http.StatusTooManyRequests, ErrorBody{Detail: detail})
}

// ValidationError sends a 422 describing why the request body was
// rejected. Binding errors from the validator are expanded into
// per-field entries; anything else (malformed JSON, wrong types)
// becomes a single-message detail.
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field: fieldName(fe),
				Msg:   fieldMessage(fe),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorBody{Detail: fields})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorBody{Detail: err.Error()})
}

// fieldName converts the validator's struct field name to the JSON
// snake_case name used on the wire.
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	default:
		return "invalid value"
	}
}
