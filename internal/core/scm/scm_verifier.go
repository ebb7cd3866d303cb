package scm

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/pkg/errors"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// verifier checks that a connection's token actually authenticates
// against the provider.
type verifier struct{}

func NewVerifier() *verifier {
	return &verifier{}
}

func (v *verifier) Verify(ctx context.Context, connection models.SCMConnection) error {
	switch connection.Provider {
	case models.SCMProviderGithub:
		return v.verifyGithub(ctx, connection)
	case models.SCMProviderGitlab:
		return v.verifyGitlab(ctx, connection)
	default:
		return fmt.Errorf("unknown scm provider %q", connection.Provider)
	}
}

func (v *verifier) verifyGithub(ctx context.Context, connection models.SCMConnection) error {
	client := github.NewClient(nil).WithAuthToken(connection.AccessToken)
	if connection.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(connection.BaseURL, connection.BaseURL)
		if err != nil {
			return errors.Wrap(err, "invalid github enterprise url")
		}
	}

	// the cheapest authenticated call there is
	_, _, err := client.Users.Get(ctx, "")
	return errors.Wrap(err, "github token check failed")
}

func (v *verifier) verifyGitlab(ctx context.Context, connection models.SCMConnection) error {
	opts := []gitlab.ClientOptionFunc{}
	if connection.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(connection.BaseURL))
	}

	client, err := gitlab.NewClient(connection.AccessToken, opts...)
	if err != nil {
		return errors.Wrap(err, "could not create gitlab client")
	}

	_, _, err = client.Users.CurrentUser(gitlab.WithContext(ctx))
	return errors.Wrap(err, "gitlab token check failed")
}
