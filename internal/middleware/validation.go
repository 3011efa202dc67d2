package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "loanpulse/internal/errors"
)

// ValidationMiddleware validates request payloads against struct tags.
type ValidationMiddleware struct {
	validator *validator.Validate
	logger    *slog.Logger
}

// NewValidationMiddleware creates a validation middleware.
func NewValidationMiddleware(logger *slog.Logger) *ValidationMiddleware {
	v := validator.New()

	// JSON tag names in error messages, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ValidationMiddleware{
		validator: v,
		logger:    logger.With(slog.String("component", "validation_middleware")),
	}
}

// ValidateStruct validates a struct, returning an APIError describing
// every failed field.
func (m *ValidationMiddleware) ValidateStruct(v interface{}) error {
	err := m.validator.Struct(v)
	if err == nil {
		return nil
	}

	var details []apierrors.ValidationError
	for _, fieldErr := range err.(validator.ValidationErrors) {
		details = append(details, apierrors.ValidationError{
			Field:   fieldErr.Field(),
			Message: formatValidationError(fieldErr),
		})
	}

	return apierrors.NewWithDetails(http.StatusBadRequest,
		"VALIDATION_FAILED", "Request validation failed", details)
}

// ContentTypeValidator rejects mutating requests whose Content-Type is
// not in the allowed list.
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, apierrors.New(http.StatusBadRequest,
					"MISSING_CONTENT_TYPE", "Content-Type header is required"))
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			render.Status(r, http.StatusUnsupportedMediaType)
			render.JSON(w, r, apierrors.NewWithDetails(http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE", "Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				}))
		})
	}
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
