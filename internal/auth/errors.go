package auth

import "errors"

// ErrInvalidCredentials is the single undifferentiated login failure:
// unknown username, wrong password or deactivated account all look the
// same to the caller, so usernames cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError is an expected, caller-correctable input problem.
// The message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
