package apierror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"closeouts/internal/domain/closeout"
)

// Error тело ошибки API: {"error": "..."}.
type Error struct {
	status  int
	Message string `json:"error" doc:"Human readable error message"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

// New собирает ошибку в формате {"error"}; детали валидации huma
// присоединяются к сообщению.
func New(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &Error{status: status, Message: msg}
}

// Install подменяет конструктор ошибок huma. Вызывается до регистрации операций.
func Install() {
	huma.NewError = New
}

// FromDomain переводит доменную ошибку в HTTP-статус.
func FromDomain(err error) error {
	switch {
	case errors.Is(err, closeout.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, closeout.ErrAlreadyExists):
		return huma.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, closeout.ErrInvalidRecord),
		errors.Is(err, closeout.ErrInvalidDate),
		errors.Is(err, closeout.ErrInvalidRange):
		return huma.NewError(http.StatusBadRequest, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, "internal server error")
	}
}
