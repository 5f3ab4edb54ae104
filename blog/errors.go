package blog

import "errors"

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// UserMessage returns the text a flash should display for err, and whether err is
// a user-facing failure at all.
func UserMessage(err error) (string, bool) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message, true
	case errors.Is(err, ErrDuplicateUsername):
		return "Username already exists.", true
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password.", true
	}
	return "", false
}
