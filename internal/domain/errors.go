package domain

import "errors"

var (
	ErrBadDateFormat   = errors.New("bad date format")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidLocation = errors.New("invalid location")
)
