package model

import "errors"

var (
	ErrUnknownPage     = errors.New("unknown page")
	ErrUnknownAction   = errors.New("unknown action")
	ErrMissingID       = errors.New("record id is required")
	ErrKeyNotFound     = errors.New("key not found")
	ErrSealedValue     = errors.New("sealed value cannot be opened")
	ErrDialogPending   = errors.New("dialog awaiting answer")
	ErrActionCancelled = errors.New("action cancelled")
)
