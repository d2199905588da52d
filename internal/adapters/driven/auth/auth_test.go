package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fetcha-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

func TestEnvTokenProvider(t *testing.T) {
	t.Run("reads GITHUB_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "ghp_from_env")
		t.Setenv("GH_TOKEN", "")
		p := NewEnvTokenProvider()

		token, err := p.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_from_env", token)
		assert.Equal(t, "GITHUB_TOKEN", p.Source())
	})

	t.Run("falls back to GH_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "ghp_from_gh")
		p := NewEnvTokenProvider()

		token, err := p.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_from_gh", token)
		assert.Equal(t, "GH_TOKEN", p.Source())
	})

	t.Run("GITHUB_TOKEN wins over GH_TOKEN", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "primary")
		t.Setenv("GH_TOKEN", "secondary")
		p := NewEnvTokenProvider()

		token, err := p.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "primary", token)
	})

	t.Run("reports missing credential", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		p := NewEnvTokenProvider()

		_, err := p.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoCredential)
		assert.Empty(t, p.Source())
	})
}

func TestConfigTokenProvider(t *testing.T) {
	t.Run("reads the stored token", func(t *testing.T) {
		store := memory.NewConfigStore()
		require.NoError(t, store.Set(ConfigKeyToken, "ghp_stored"))
		p := NewConfigTokenProvider(store)

		token, err := p.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ghp_stored", token)
		assert.Equal(t, "config", p.Source())
	})

	t.Run("reports missing credential", func(t *testing.T) {
		p := NewConfigTokenProvider(memory.NewConfigStore())

		_, err := p.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoCredential)
	})
}

func TestChainTokenProvider(t *testing.T) {
	t.Run("environment wins over config", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "from_env")
		store := memory.NewConfigStore()
		require.NoError(t, store.Set(ConfigKeyToken, "from_config"))
		chain := NewDefaultChain(store)

		token, err := chain.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "from_env", token)
		assert.Equal(t, "GITHUB_TOKEN", chain.Source())
	})

	t.Run("falls through to config", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		store := memory.NewConfigStore()
		require.NoError(t, store.Set(ConfigKeyToken, "from_config"))
		chain := NewDefaultChain(store)

		token, err := chain.GetToken(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "from_config", token)
		assert.Equal(t, "config", chain.Source())
	})

	t.Run("reports missing credential when chain is empty-handed", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		chain := NewDefaultChain(memory.NewConfigStore())

		_, err := chain.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrNoCredential)
	})

	t.Run("stops on unexpected provider errors", func(t *testing.T) {
		boom := errors.New("store unavailable")
		chain := NewChainTokenProvider(&failingProvider{err: boom})

		_, err := chain.GetToken(context.Background())

		assert.ErrorIs(t, err, boom)
	})
}

// failingProvider returns a fixed error from GetToken.
type failingProvider struct {
	err error
}

func (p *failingProvider) GetToken(_ context.Context) (string, error) {
	return "", p.err
}

func (p *failingProvider) Source() string {
	return "failing"
}
