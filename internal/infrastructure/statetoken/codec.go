// Package statetoken signs and verifies the OAuth state carried through the
// payment provider's authorization redirect.
package statetoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSecret = errors.New("state token secret is empty")

type claims struct {
	SubjectID string `json:"subject_id"`
	IssuedAt  *int64 `json:"issued_at"`
	jwt.RegisteredClaims
}

// Codec encodes OAuthState as a compact HS256 JWT. It does not judge
// freshness; callers compare IssuedAt against their own clock.
type Codec struct {
	secret []byte
}

var _ interfaces.IStateCodec = (*Codec)(nil)

func NewCodec(secret string) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

func (c *Codec) Encode(subjectID string, issuedAt time.Time) (string, error) {
	ms := issuedAt.UnixMilli()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SubjectID: subjectID,
		IssuedAt:  &ms,
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

func (c *Codec) Decode(state string) (entities.OAuthState, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(state, &cl, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return entities.OAuthState{}, fmt.Errorf("%w: %w", interfaces.ErrMalformedState, err)
	}
	if cl.SubjectID == "" {
		return entities.OAuthState{}, fmt.Errorf("%w: missing subject_id", interfaces.ErrMalformedState)
	}
	if cl.IssuedAt == nil {
		return entities.OAuthState{}, fmt.Errorf("%w: missing issued_at", interfaces.ErrMalformedState)
	}
	return entities.OAuthState{SubjectID: cl.SubjectID, IssuedAt: time.UnixMilli(*cl.IssuedAt).UTC()}, nil
}
