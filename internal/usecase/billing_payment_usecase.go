package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quoteflow/internal/domain/entities"
	"quoteflow/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var (
	ErrBillingPaymentNotFound         = errors.New("billing payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrQuoteNotApproved               = errors.New("quote not approved")
	ErrQuoteAlreadyPaid               = errors.New("quote already paid")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// SandboxPayer describes the Mercado Pago test user substituted into sandbox
// requests. Enabled is true when the seller token is a TEST- token.
type SandboxPayer struct {
	Enabled bool
	Email   string
	UserID  string
}

// defaultSandboxPayerEmail is the payer Mercado Pago's sandbox examples use.
const defaultSandboxPayerEmail = "test_user_br@testuser.com"

// IBillingPaymentUseCase charges an approved quote through the payment gateway.
//
// Behavior:
//   - the amount charged is always the stored quote total.
//   - an approved provider payment moves the quote to paid, which freezes view tracking.
type IBillingPaymentUseCase interface {
	PayByShareLink(ctx context.Context, shareLink string, mpPayload json.RawMessage) (entities.BillingPayment, error)
	GetForOwner(ctx context.Context, detailerID, paymentID string) (entities.BillingPayment, error)
	ListForOwner(ctx context.Context, detailerID, quoteID string) ([]entities.BillingPayment, error)
}

type BillingPaymentUseCase struct {
	repo      interfaces.IBillingPaymentRepository
	quoteRepo interfaces.IQuoteRepository
	gateway   interfaces.IPaymentGateway
	sandbox   SandboxPayer
	now       func() time.Time
}

var _ IBillingPaymentUseCase = (*BillingPaymentUseCase)(nil)

func NewBillingPaymentUseCase(repo interfaces.IBillingPaymentRepository, quoteRepo interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway, sandbox SandboxPayer) *BillingPaymentUseCase {
	return &BillingPaymentUseCase{repo: repo, quoteRepo: quoteRepo, gateway: gateway, sandbox: sandbox, now: time.Now}
}

func (u *BillingPaymentUseCase) PayByShareLink(ctx context.Context, shareLink string, mpPayload json.RawMessage) (entities.BillingPayment, error) {
	shareLink = strings.TrimSpace(shareLink)
	log.Info().Str("share_link", shareLink).Int("payload_len", len(mpPayload)).Msg("[payment][usecase] pay start")
	if shareLink == "" {
		return entities.BillingPayment{}, ErrQuoteNotFound
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		log.Warn().Str("share_link", shareLink).Msg("[payment][usecase] invalid payload")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if u.gateway == nil {
		log.Error().Str("share_link", shareLink).Msg("[payment][usecase] gateway not configured")
		return entities.BillingPayment{}, ErrServiceUnavailable
	}

	q, err := u.quoteRepo.GetByShareLink(ctx, shareLink)
	if err != nil {
		log.Error().Err(err).Str("share_link", shareLink).Msg("[payment][usecase] failed loading quote")
		return entities.BillingPayment{}, err
	}
	if q.ID == "" {
		return entities.BillingPayment{}, ErrQuoteNotFound
	}
	switch q.Status {
	case entities.QuoteStatusApproved:
	case entities.QuoteStatusPaid:
		return entities.BillingPayment{}, ErrQuoteAlreadyPaid
	default:
		log.Warn().Str("quote_id", q.ID).Str("status", string(q.Status)).Msg("[payment][usecase] quote not approved")
		return entities.BillingPayment{}, ErrQuoteNotApproved
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Warn().Str("quote_id", q.ID).Msg("[payment][usecase] missing payment_method_id")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}
	if u.sandbox.Enabled {
		u.normalizeSandboxPayer(reqMap)
	}
	u.ensurePayerDefaults(reqMap)
	if !hasPayer(reqMap) {
		log.Warn().Str("quote_id", q.ID).Msg("[payment][usecase] missing/invalid payer")
		return entities.BillingPayment{}, ErrInvalidMPPayload
	}

	// external_reference lets provider events be reconciled to the quote.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = q.ID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Quote %s", q.Title)
	}
	reqMap["transaction_amount"] = q.Total.InexactFloat64()
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.BillingPayment{}, err
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("[payment][usecase] payment gateway failed")
		return entities.BillingPayment{}, classifyGatewayError(err)
	}
	log.Info().Str("quote_id", q.ID).Str("provider_payment_id", providerPaymentID).Str("provider_status", providerStatus).Msg("[payment][usecase] payment gateway success")

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn().Err(err).Str("quote_id", q.ID).Msg("[payment][usecase] provider response unmarshal failed")
	}

	now := u.now().UTC()
	created, err := u.repo.Create(ctx, entities.BillingPayment{
		ID:                 providerPaymentID,
		QuoteID:            q.ID,
		Amount:             q.Total,
		Date:               now,
		Status:             entities.PaymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	})
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Str("payment_id", providerPaymentID).Msg("[payment][usecase] payment repository create failed")
		return entities.BillingPayment{}, err
	}

	if created.Status == entities.PaymentStatusApproved {
		paid, err := u.quoteRepo.TransitionStatus(ctx, q.ID, []entities.QuoteStatus{entities.QuoteStatusApproved}, entities.QuoteStatusPaid, now)
		if err != nil {
			log.Error().Err(err).Str("quote_id", q.ID).Str("payment_id", created.ID).Msg("[payment][usecase] marking quote paid failed")
			return entities.BillingPayment{}, err
		}
		if paid.ID == "" {
			log.Warn().Str("quote_id", q.ID).Str("payment_id", created.ID).Msg("[payment][usecase] quote left approved state before it was marked paid")
		}
	}

	log.Info().Str("quote_id", q.ID).Str("payment_id", created.ID).Str("status", string(created.Status)).Msg("[payment][usecase] pay success")
	return created, nil
}

func (u *BillingPaymentUseCase) GetForOwner(ctx context.Context, detailerID, paymentID string) (entities.BillingPayment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.BillingPayment{}, ErrInvalidPaymentID
	}
	p, err := u.repo.GetByID(ctx, paymentID)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	if _, err := ownedQuote(ctx, u.quoteRepo, detailerID, p.QuoteID); err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (u *BillingPaymentUseCase) ListForOwner(ctx context.Context, detailerID, quoteID string) ([]entities.BillingPayment, error) {
	q, err := ownedQuote(ctx, u.quoteRepo, detailerID, quoteID)
	if err != nil {
		return nil, err
	}
	return u.repo.ListByQuoteID(ctx, q.ID)
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *BillingPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !u.sandbox.Enabled || hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.sandbox.Email != "" {
		payer["email"] = u.sandbox.Email
	} else {
		payer["email"] = defaultSandboxPayerEmail
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email,
// which the sandbox accepts more reliably.
func (u *BillingPaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.sandbox.UserID == "" || u.sandbox.Email == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.sandbox.UserID {
		return
	}
	payer["email"] = u.sandbox.Email
	delete(payer, "id")
	log.Debug().Msg("[payment][usecase] mapped sandbox payer user_id to payer.email")
}
