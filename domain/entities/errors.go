package entities

import "errors"

// ErrInvalidIdentifier indicates an identifier string that cannot be
// converted into a store ObjectID.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrInvalidDate indicates a date string that cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")
