package http

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/novelnest/internal/entities"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// MinPublicationYear is the earliest publication year accepted from clients.
const MinPublicationYear = 1900

var registerValidationsOnce sync.Once

// registerValidations installs the custom tags used by request structs on
// gin's default validator.
func registerValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("reading_status", func(fl validator.FieldLevel) bool {
			return entities.ReadingStatus(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("publication_year", func(fl validator.FieldLevel) bool {
			year := fl.Field().Int()
			return year >= MinPublicationYear && year <= int64(time.Now().Year())
		})
	})
}

// bindAndValidate binds a JSON, form or multipart body into dst and
// responds with 400 and per-field errors when it does not validate.
func bindAndValidate(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation failed",
				Code:    "validation_failed",
				Details: formatValidationErrors(verrs),
			})
			return false
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Details: []FieldError{
				{Rule: "syntax", Message: err.Error()},
			},
		})
		return false
	}
	return true
}

func formatValidationErrors(verrs validator.ValidationErrors) []FieldError {
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		name := toJSONFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   name,
			Rule:    fe.Tag(),
			Message: buildMessage(name, fe),
		})
	}
	return fields
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "reading_status":
		return field + " must be one of Unread, Reading, Completed"
	case "publication_year":
		return field + " must be between 1900 and the current year"
	case "min", "max":
		return field + " is out of range (" + fe.Tag() + "=" + fe.Param() + ")"
	}
	return field + " is invalid (" + fe.Tag() + ")"
}
