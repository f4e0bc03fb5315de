package graph

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"
)

// defaultScope requests the application permissions consented for the
// registered app, per the client-credentials grant.
const defaultScope = "https://graph.microsoft.com/.default"

// tokenURLFormat is the Azure AD v2.0 token endpoint for a tenant.
const tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

// Credentials identifies the registered application for the
// client-credentials grant. TokenURL is derived from TenantID when empty;
// tests point it at a fake identity endpoint.
type Credentials struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// AcquireToken performs a client-credentials grant against the identity
// provider's token endpoint and returns the bearer token. Tokens are never
// cached; each inbound request chain acquires a fresh one. There is no
// retry: any transport or non-2xx failure surfaces as an error.
func AcquireToken(ctx context.Context, creds Credentials, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if creds.TenantID == "" || creds.ClientID == "" || creds.ClientSecret == "" {
		return "", ErrMissingCredentials
	}

	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(tokenURLFormat, url.PathEscape(creds.TenantID))
	}

	cc := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{defaultScope},
	}

	return fetchToken(ctx, cc, logger)
}

// fetchToken executes the grant with a pre-built config so tests can
// inject a mock endpoint.
func fetchToken(ctx context.Context, cc *clientcredentials.Config, logger *slog.Logger) (string, error) {
	tok, err := cc.Token(ctx)
	if err != nil {
		logger.Warn("token acquisition failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("graph: acquiring token: %w", err)
	}

	logger.Debug("token acquired", slog.Time("expiry", tok.Expiry))

	return tok.AccessToken, nil
}
