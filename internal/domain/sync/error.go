package sync

import "errors"

var (
	ErrAlreadyRunning = errors.New("sync already running")
	ErrEmptyJob       = errors.New("sync job has no days")
)
