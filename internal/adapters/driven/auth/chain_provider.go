package auth

import (
	"context"
	"errors"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// Ensure ChainTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ChainTokenProvider)(nil)

// ChainTokenProvider consults providers in order and uses the first
// that yields a token.
type ChainTokenProvider struct {
	providers []driven.TokenProvider
	source    string
}

// NewChainTokenProvider creates a provider chain. Typical order is
// environment first, stored config second.
func NewChainTokenProvider(providers ...driven.TokenProvider) *ChainTokenProvider {
	return &ChainTokenProvider{providers: providers}
}

// NewDefaultChain creates the standard resolution chain over the given
// config store: GITHUB_TOKEN, GH_TOKEN, then the stored token.
func NewDefaultChain(config driven.ConfigStore) *ChainTokenProvider {
	return NewChainTokenProvider(
		NewEnvTokenProvider(),
		NewConfigTokenProvider(config),
	)
}

// GetToken returns the first token found in the chain. A provider with
// no credential is skipped; any other error stops the walk.
func (p *ChainTokenProvider) GetToken(ctx context.Context) (string, error) {
	for _, provider := range p.providers {
		token, err := provider.GetToken(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNoCredential) {
				continue
			}
			return "", err
		}
		if token != "" {
			p.source = provider.Source()
			return token, nil
		}
	}
	return "", domain.ErrNoCredential
}

// Source names where the winning token came from.
func (p *ChainTokenProvider) Source() string {
	return p.source
}
