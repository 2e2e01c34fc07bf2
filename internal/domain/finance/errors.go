package finance

import "errors"

var (
	ErrResidentNotFound = errors.New("resident not found")
	ErrRecordNotFound   = errors.New("maintenance record not found")
	ErrNotSelfReported  = errors.New("record is not self-reported")
	ErrNotSecretary     = errors.New("secretary role required")
)
