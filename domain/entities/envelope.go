package entities

import "strings"

// UnknownErrorMessage is used when a failure is constructed without a message,
// so that a failure envelope never carries an empty error string.
const UnknownErrorMessage = "unknown error"

// Envelope is the outcome of a single fetch: either a Pokemon or an error
// message, never both. The variant is fixed at construction, so the success
// flag and the populated field cannot disagree.
//
// The zero value is a failure with UnknownErrorMessage.
type Envelope struct {
	pokemon *Pokemon
	message string
	success bool
}

// Success creates a successful Envelope carrying p.
func Success(p Pokemon) Envelope {
	return Envelope{success: true, pokemon: &p}
}

// Failure creates a failed Envelope carrying a human-readable message.
// Invalid UTF-8 in message is replaced with U+FFFD.
func Failure(message string) Envelope {
	message = strings.ToValidUTF8(message, "\uFFFD")
	if message == "" {
		message = UnknownErrorMessage
	}
	return Envelope{message: message}
}

// FailureFromError creates a failed Envelope from err's message.
func FailureFromError(err error) Envelope {
	if err == nil {
		return Failure("")
	}
	return Failure(err.Error())
}

// IsSuccess reports whether the envelope carries a Pokemon.
func (e Envelope) IsSuccess() bool {
	return e.success
}

// Pokemon returns the carried Pokemon. The second value is false for failures.
func (e Envelope) Pokemon() (Pokemon, bool) {
	if !e.success || e.pokemon == nil {
		return Pokemon{}, false
	}
	return *e.pokemon, true
}

// Message returns the error message. The second value is false for successes.
func (e Envelope) Message() (string, bool) {
	if e.success {
		return "", false
	}
	if e.message == "" {
		return UnknownErrorMessage, true
	}
	return e.message, true
}
