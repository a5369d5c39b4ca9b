package types

import "fmt"

// ProfileError represents a user profile that could not be decoded or failed validation.
type ProfileError struct {
	Message string
	Cause   error
}

func (e *ProfileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile error: %s", e.Message)
}

func (e *ProfileError) Unwrap() error {
	return e.Cause
}
