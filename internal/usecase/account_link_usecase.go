package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteflow/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

const (
	// StateTTL is how long an issued OAuth state stays redeemable.
	StateTTL = 15 * time.Minute
	// ExchangeTimeout bounds the single authorization-code exchange call.
	ExchangeTimeout = 12 * time.Second
)

var (
	ErrServiceUnavailable       = errors.New("payment provider not configured")
	ErrProviderDenied           = errors.New("authorization denied by provider")
	ErrMissingAuthorizationCode = errors.New("missing authorization code or state")
	ErrInvalidState             = errors.New("invalid authorization state")
	ErrAuthorizationExpired     = errors.New("authorization expired")
	ErrExchangeFailed           = errors.New("authorization code exchange failed")
	ErrExchangeIncomplete       = errors.New("authorization exchange returned no account")
	ErrPersistenceFailed        = errors.New("linked account could not be saved")
)

// ProviderDeniedError carries the reason the provider reported on the callback.
// It matches ErrProviderDenied under errors.Is.
type ProviderDeniedError struct {
	Code        string
	Description string
}

func (e *ProviderDeniedError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

func (e *ProviderDeniedError) Is(target error) bool { return target == ErrProviderDenied }

// OAuthCallback holds the query parameters the provider appends to the
// redirect back to us.
type OAuthCallback struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// IAccountLinkUseCase links a detailer to a payment-processor account through
// the provider's authorization redirect.
//
// The state issued by BeginLink is self-contained: nothing is stored until the
// callback completes, and a state older than StateTTL is refused.
type IAccountLinkUseCase interface {
	BeginLink(ctx context.Context, subjectID string) (authorizeURL string, err error)
	CompleteLink(ctx context.Context, cb OAuthCallback) (accountID string, err error)
}

type AccountLinkUseCase struct {
	codec     interfaces.IStateCodec
	gateway   interfaces.IAccountLinkGateway
	detailers interfaces.IDetailerRepository

	now             func() time.Time
	exchangeTimeout time.Duration
}

var _ IAccountLinkUseCase = (*AccountLinkUseCase)(nil)

// NewAccountLinkUseCase wires the coordinator. A nil gateway means the
// provider is not configured and every call reports ErrServiceUnavailable.
func NewAccountLinkUseCase(codec interfaces.IStateCodec, gateway interfaces.IAccountLinkGateway, detailers interfaces.IDetailerRepository) *AccountLinkUseCase {
	return &AccountLinkUseCase{
		codec:           codec,
		gateway:         gateway,
		detailers:       detailers,
		now:             time.Now,
		exchangeTimeout: ExchangeTimeout,
	}
}

func (u *AccountLinkUseCase) BeginLink(ctx context.Context, subjectID string) (string, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", ErrMissingIdentity
	}
	if u.gateway == nil {
		return "", ErrServiceUnavailable
	}
	state, err := u.codec.Encode(subjectID, u.now())
	if err != nil {
		return "", err
	}
	log.Info().Str("detailer_id", subjectID).Msg("[oauth][usecase] link started")
	return u.gateway.AuthorizationURL(state), nil
}

func (u *AccountLinkUseCase) CompleteLink(ctx context.Context, cb OAuthCallback) (string, error) {
	if cb.Error != "" {
		log.Warn().Str("error", cb.Error).Str("description", cb.ErrorDescription).Msg("[oauth][usecase] provider returned error")
		return "", &ProviderDeniedError{Code: cb.Error, Description: cb.ErrorDescription}
	}
	if u.gateway == nil {
		log.Error().Msg("[oauth][usecase] callback received but provider is not configured")
		return "", ErrServiceUnavailable
	}
	if cb.Code == "" || cb.State == "" {
		return "", ErrMissingAuthorizationCode
	}

	state, err := u.codec.Decode(cb.State)
	if err != nil {
		log.Warn().Err(err).Msg("[oauth][usecase] state rejected")
		return "", fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if age := u.now().Sub(state.IssuedAt); age > StateTTL {
		log.Warn().Str("detailer_id", state.SubjectID).Dur("age", age).Msg("[oauth][usecase] state expired")
		return "", ErrAuthorizationExpired
	}
	subjectID := strings.TrimSpace(state.SubjectID)
	if subjectID == "" {
		return "", ErrInvalidState
	}

	exCtx, cancel := context.WithTimeout(ctx, u.exchangeTimeout)
	defer cancel()
	accountID, err := u.gateway.ExchangeCode(exCtx, cb.Code)
	if err != nil {
		log.Error().Err(err).Str("detailer_id", subjectID).Msg("[oauth][usecase] code exchange failed")
		return "", fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if strings.TrimSpace(accountID) == "" {
		log.Error().Str("detailer_id", subjectID).Msg("[oauth][usecase] exchange response carried no account id")
		return "", ErrExchangeIncomplete
	}

	d, err := u.detailers.SaveExternalAccount(ctx, subjectID, accountID, u.now().UTC())
	if err == nil && d.ID == "" {
		err = ErrDetailerNotFound
	}
	if err != nil {
		// The provider already granted access; this account id is orphaned
		// until the detailer repeats the handshake.
		log.Error().Err(err).Str("detailer_id", subjectID).Str("account_id", accountID).Msg("[oauth][usecase] persisting linked account failed")
		return "", fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}

	log.Info().Str("detailer_id", subjectID).Str("account_id", accountID).Msg("[oauth][usecase] account linked")
	return accountID, nil
}
