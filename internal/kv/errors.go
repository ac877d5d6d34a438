package kv

import "errors"

var (
	ErrEmptyKey     = errors.New("kv: key is required")
	ErrFailedToGet  = errors.New("kv: failed to get")
	ErrFailedToSet  = errors.New("kv: failed to set")
	ErrFailedToDel  = errors.New("kv: failed to delete")
	ErrInvalidValue = errors.New("kv: stored value is not valid JSON")
)
