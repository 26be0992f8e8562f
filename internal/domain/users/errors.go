package users

import "errors"

// ErrInvalidOTP indicates the submitted code does not match a pending challenge.
var ErrInvalidOTP = errors.New("invalid OTP")

// ErrAlreadyExists indicates a profile is already registered for the phone number.
var ErrAlreadyExists = errors.New("user already exists")

// ErrNotFound indicates no profile exists for the requested id.
var ErrNotFound = errors.New("user not found")
