package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToGet    = errors.New("failed to get record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrFailedToApply  = errors.New("failed to apply remote documents")
	ErrFailedToCursor = errors.New("failed to access replication checkpoint")
)
