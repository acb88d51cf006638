package validation

import "unicode"

// Error reports a caller-supplied value that violates a field constraint.
// Services return it by early-return on the first violated rule; the HTTP
// layer maps it to a 400 without inspecting the message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
