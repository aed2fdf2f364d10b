package interfaces

import (
	"errors"
	"time"

	"quoteflow/internal/domain/entities"
)

// ErrMalformedState is returned by IStateCodec.Decode when the input is not a
// well-formed, untampered state or misses a required field.
var ErrMalformedState = errors.New("malformed oauth state")

// IStateCodec turns an OAuthState into a transport-safe string and back.
type IStateCodec interface {
	Encode(subjectID string, issuedAt time.Time) (string, error)
	Decode(state string) (entities.OAuthState, error)
}
