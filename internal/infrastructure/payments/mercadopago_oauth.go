package payments

import (
	"context"
	"errors"
	"strconv"

	appconfig "quoteflow/internal/infrastructure/config"
	"quoteflow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/oauth"
	"github.com/mercadopago/sdk-go/pkg/user"
	"github.com/rs/zerolog/log"
)

var ErrAccountLinkNotConfigured = errors.New("mercado pago oauth not configured")

// oauthClient is the slice of oauth.Client the account-link gateway uses.
type oauthClient interface {
	Create(ctx context.Context, authorizationCode, redirectURI string) (*oauth.Response, error)
	GetAuthorizationURL(clientID, redirectURI, state string) string
}

// userClient is the slice of user.Client used to identify the linked seller.
type userClient interface {
	Get(ctx context.Context) (*user.Response, error)
}

func newUserClient(accessToken string) (userClient, error) {
	sdkCfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return user.NewClient(sdkCfg), nil
}

// MercadoPagoAccountLink connects a detailer's Mercado Pago seller account
// through the marketplace OAuth flow.
type MercadoPagoAccountLink struct {
	client      oauthClient
	users       func(accessToken string) (userClient, error)
	clientID    string
	redirectURI string
}

var _ interfaces.IAccountLinkGateway = (*MercadoPagoAccountLink)(nil)

func NewMercadoPagoAccountLink(cfg appconfig.MercadoPagoConfig) (*MercadoPagoAccountLink, error) {
	if !cfg.OAuthConfigured() {
		return nil, ErrAccountLinkNotConfigured
	}
	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		return nil, err
	}
	log.Info().Str("redirect_uri", cfg.RedirectURI).Msg("[oauth][gateway] Mercado Pago oauth client initialized")
	return &MercadoPagoAccountLink{
		client:      oauth.NewClient(sdkCfg),
		users:       newUserClient,
		clientID:    cfg.ClientID,
		redirectURI: cfg.RedirectURI,
	}, nil
}

func (g *MercadoPagoAccountLink) AuthorizationURL(state string) string {
	return g.client.GetAuthorizationURL(g.clientID, g.redirectURI, state)
}

// ExchangeCode trades the code for the seller's token, then reads the seller
// id with that token. Neither call is retried; the caller's deadline covers
// both. An empty id means the provider returned no usable account.
func (g *MercadoPagoAccountLink) ExchangeCode(ctx context.Context, code string) (string, error) {
	resp, err := g.client.Create(ctx, code, g.redirectURI)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.AccessToken == "" {
		log.Warn().Msg("[oauth][gateway] token response carried no access token")
		return "", nil
	}

	users, err := g.users(resp.AccessToken)
	if err != nil {
		return "", err
	}
	me, err := users.Get(ctx)
	if err != nil {
		return "", err
	}
	if me == nil || me.ID == 0 {
		return "", nil
	}
	return strconv.Itoa(me.ID), nil
}
