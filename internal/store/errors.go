package store

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyDecided   = errors.New("application has already been decided")
	ErrInvalidStatus    = errors.New("invalid application status")
	ErrDuplicateUser    = errors.New("username already exists")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrDuplicatePayment = errors.New("payment already recorded")
)
