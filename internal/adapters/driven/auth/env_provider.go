package auth

import (
	"context"
	"os"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// Environment variables consulted for a token, in precedence order.
var envVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads the token from the process environment.
// GITHUB_TOKEN takes precedence over GH_TOKEN.
type EnvTokenProvider struct {
	source string
}

// NewEnvTokenProvider creates a token provider backed by the environment.
func NewEnvTokenProvider() *EnvTokenProvider {
	return &EnvTokenProvider{}
}

// GetToken returns the first non-empty token variable.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	for _, name := range envVars {
		if token := os.Getenv(name); token != "" {
			p.source = name
			return token, nil
		}
	}
	return "", domain.ErrNoCredential
}

// Source names the environment variable the token came from.
func (p *EnvTokenProvider) Source() string {
	return p.source
}
