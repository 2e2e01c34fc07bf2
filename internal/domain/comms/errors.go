package comms

import "errors"

var (
	ErrAuthorNotFound   = errors.New("author not found")
	ErrSenderNotFound   = errors.New("sender not found")
	ErrReceiverNotFound = errors.New("receiver not found")
	ErrNotSecretary     = errors.New("secretary role required")
	ErrInvalidPriority  = errors.New("invalid announcement priority")
)
