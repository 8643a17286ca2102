package closeout

import "errors"

var (
	ErrNotFound      = errors.New("closeout not found")
	ErrAlreadyExists = errors.New("closeout already exists")
	ErrInvalidRecord = errors.New("invalid closeout")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidRange  = errors.New("invalid date range")
)
