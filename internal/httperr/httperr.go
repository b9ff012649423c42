package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	ConflictID uint   `json:"conflict_id,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteBusiness mapea el tipo de error de negocio al status HTTP del contrato:
// validación 422, conflicto 409, permiso 403, inexistente 404.
func WriteBusiness(c *gin.Context, err error, message string) bool {
	be, ok := AsBusiness(err)
	if !ok {
		return false
	}

	status := http.StatusInternalServerError
	switch be.Kind {
	case KindValidation:
		status = http.StatusUnprocessableEntity
	case KindConflict:
		status = http.StatusConflict
	case KindForbidden:
		status = http.StatusForbidden
	case KindNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, HTTPError{
		Code:       be.Code,
		Message:    message,
		Field:      be.Field,
		ConflictID: be.ConflictID,
	})
	return true
}
