package scm

import (
	"context"
	"time"

	"github.com/l3montree-dev/exposuremap/internal/core"
	"github.com/l3montree-dev/exposuremap/internal/database/models"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type service struct {
	connectionRepository core.SCMConnectionRepository
	verifier             core.SCMConnectionVerifier
}

func NewService(connectionRepository core.SCMConnectionRepository, verifier core.SCMConnectionVerifier) *service {
	return &service{
		connectionRepository: connectionRepository,
		verifier:             verifier,
	}
}

// VerifyConnection checks a single connection and persists the result.
func (s *service) VerifyConnection(ctx context.Context, connection models.SCMConnection) (models.SCMConnection, error) {
	verifyErr := s.verifier.Verify(ctx, connection)

	now := time.Now()
	connection.LastVerified = &now
	connection.Healthy = verifyErr == nil

	if err := s.connectionRepository.Save(nil, &connection); err != nil {
		return connection, errors.Wrap(err, "could not save verification result")
	}
	return connection, verifyErr
}

// VerifyAll fans the token checks out over all connections. A failing
// token marks its connection unhealthy but does not abort the others.
func (s *service) VerifyAll(ctx context.Context) ([]models.SCMConnection, error) {
	connections, err := s.connectionRepository.GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "could not list scm connections")
	}

	results := make([]models.SCMConnection, len(connections))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for i, connection := range connections {
		group.Go(func() error {
			// verification failures land in the Healthy flag,
			// they are not errors of the fan out itself
			result, _ := s.VerifyConnection(groupCtx, connection)
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
