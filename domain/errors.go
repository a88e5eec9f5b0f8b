package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrListFailure means the top-stories list could not be obtained; the cycle is skipped.
	ErrListFailure = errors.New("list failure")
	// ErrItemFetch means a single item could not be fetched.
	ErrItemFetch = errors.New("item fetch failure")
	// ErrMalformedItem means a fetched item lacks a required field or is not valid JSON.
	ErrMalformedItem = errors.New("malformed item")
	// ErrStorage means the durable commit could not complete.
	ErrStorage = errors.New("storage failure")
)

// ItemError records why a single story ID was skipped.
type ItemError struct {
	ID  int64
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("story %d: %v", e.ID, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
