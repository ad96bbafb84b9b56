package httputil

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/healthapp-api/pkg/errors"
)

// FieldError names a request field that failed validation.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// BindJSON decodes and validates the body into obj. On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondWithError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.PayloadTooLarge(maxErr.Limit)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.BadRequest("invalid request body", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	appErr := apperrors.BadRequest("validation failed: "+fields[0].Field+" is "+ruleText(fields[0].Rule), err)
	appErr.Details = map[string]interface{}{"fields": fields}
	return appErr
}

func ruleText(rule string) string {
	switch rule {
	case "required", "notblank":
		return "required"
	case "email":
		return "not a valid email"
	case "oneof":
		return "not an allowed value"
	default:
		return "invalid"
	}
}

// ParamID parses a positive integer path parameter. On failure it writes a 400 and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondWithError(c, apperrors.BadRequest("invalid "+name, err))
		return 0, false
	}
	return id, true
}
