package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// FetchBlob fetches and decodes the content of m at its recorded
// revision (the blob SHA the search result pointed at).
func (c *Client) FetchBlob(ctx context.Context, m domain.Match) ([]byte, error) {
	if m.Revision == "" {
		return nil, ErrMissingRevision
	}
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	blob, resp, err := c.gh.Git.GetBlob(ctx, m.Owner, m.Repo, m.Revision)
	if err != nil {
		return nil, c.wrapError(err, "get blob")
	}

	c.updateRateLimitFromResponse(resp)

	return decodeBlob(blob, m.Revision)
}

// decodeBlob decodes blob content. The API serves blobs base64-encoded
// with embedded newlines; anything else passes through as-is.
func decodeBlob(blob *gh.Blob, revision string) ([]byte, error) {
	if blob.GetEncoding() == "base64" {
		content := strings.ReplaceAll(blob.GetContent(), "\n", "")
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return nil, fmt.Errorf("decode blob %s: %w", revision, err)
		}
		return decoded, nil
	}

	return []byte(blob.GetContent()), nil
}
