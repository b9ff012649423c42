package httperr

import "errors"

// Kind clasifica los errores de negocio del core de reservas.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
)

type BusinessError struct {
	Kind Kind
	Code string

	// Campo ofensivo (validación) o turno en conflicto, cuando aplica.
	Field      string
	ConflictID uint
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code, field string) error {
	return BusinessError{Kind: KindValidation, Code: code, Field: field}
}

func ErrConflict(code string, conflictID uint) error {
	return BusinessError{Kind: KindConflict, Code: code, ConflictID: conflictID}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
