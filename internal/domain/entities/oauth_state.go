package entities

import "time"

// OAuthState is the self-contained payload carried through the payment
// provider's authorization redirect. It is never stored server-side.
type OAuthState struct {
	SubjectID string
	IssuedAt  time.Time
}
