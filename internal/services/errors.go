package services

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotListOwner      = errors.New("only the list owner can change this list")
	ErrHandleUnavailable = errors.New("could not find a free handle")
)
