package domain

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/pkg/validation"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

const (
	MessageInvalidParameter = "invalid parameter"
	MessageInternal         = "internal server error"
)

// BindJSON decodes the request body into obj, classifying decode errors
// the way RespondError expects. A field of the wrong type is reported only
// when no earlier field breaks a rule.
func BindJSON(c *gin.Context, obj any) error {
	data, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	typeErr := validation.DecodeJSON(data, obj)
	if typeErr == nil || errors.Is(typeErr, validation.ErrMalformedJSON) {
		return typeErr
	}
	return validation.First(obj, typeErr, validation.Check(obj))
}

// RespondError maps err to a status and a fixed message. Internal errors are
// logged and never leak their text.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		logger.Debug("Rejected request parameter",
			zap.String("target", fieldErr.Target),
			zap.String("rule", fieldErr.Rule))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: MessageInvalidParameter, Target: fieldErr.Target})
	case errors.Is(err, validation.ErrMalformedJSON):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validation.ErrMalformedJSON.Error()})
	case errors.Is(err, models.ErrNoActiveSchedule):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: models.ErrNoActiveSchedule.Error()})
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: MessageInternal})
	}
}
