package core

import (
	"errors"
	"fmt"
)

// ErrUnknownToken is matched by every *UnknownTokenError
var ErrUnknownToken = errors.New("token has no spamicity")

// UnknownTokenError is returned when a document holds a token the spamicity
// table has never scored
type UnknownTokenError struct {
	Token Token
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown token %q: %v", e.Token, ErrUnknownToken)
}

// Is makes errors.Is(err, ErrUnknownToken) hold
func (e *UnknownTokenError) Is(target error) bool {
	return target == ErrUnknownToken
}
