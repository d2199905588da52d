package auth

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// ConfigKeyToken is the config entry holding the stored token.
// Written by `fetcha auth set`, cleared by `fetcha auth clear`.
const ConfigKeyToken = "auth.token"

// Ensure ConfigTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ConfigTokenProvider)(nil)

// ConfigTokenProvider reads the token persisted in the config store.
// Tokens here are personal access tokens; they don't expire and don't
// require refresh.
type ConfigTokenProvider struct {
	config driven.ConfigStore
	source string
}

// NewConfigTokenProvider creates a token provider backed by the config store.
func NewConfigTokenProvider(config driven.ConfigStore) *ConfigTokenProvider {
	return &ConfigTokenProvider{config: config}
}

// GetToken returns the stored token.
func (p *ConfigTokenProvider) GetToken(_ context.Context) (string, error) {
	token := p.config.GetString(ConfigKeyToken)
	if token == "" {
		return "", domain.ErrNoCredential
	}
	p.source = "config"
	return token, nil
}

// Source reports "config" once a token has been read.
func (p *ConfigTokenProvider) Source() string {
	return p.source
}
