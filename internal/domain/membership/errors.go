package membership

import "errors"

var (
	ErrInviteNotFound       = errors.New("invite code not found or already used")
	ErrPhoneTaken           = errors.New("phone already registered in apartment")
	ErrPhoneNotFound        = errors.New("no resident with that phone")
	ErrResidentNotFound     = errors.New("resident not found")
	ErrNotSecretary         = errors.New("secretary role required")
	ErrCodeGenerationFailed = errors.New("invite code generation failed")
)
