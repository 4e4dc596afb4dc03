// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "errors"

var (
	ErrNameRequired    = errors.New("name is required")
	ErrDateRequired    = errors.New("date is required")
	ErrInvalidDate     = errors.New("invalid date, expecting YYYY-MM-DD")
	ErrUnknownCategory = errors.New("unknown vendor category")
	ErrEventNotFound   = errors.New("event not found")
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrVendorRequired  = errors.New("vendor is required")
)

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrDateRequired) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrVendorRequired)
}

// IsNotFound reports whether err refers to a missing event or vendor.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrVendorNotFound)
}
