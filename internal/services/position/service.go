// Package position implements the position domain operations. Position
// reads are open to any authenticated principal; mutations are admin only.
package position

import (
	"context"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/store"
)

// Service composes the position store with the authorization engine.
type Service struct {
	store *store.Store[models.Position]
	authz *auth.Authorizer
}

// NewService constructs the service around its injected collaborators.
func NewService(st *store.Store[models.Position], authz *auth.Authorizer) *Service {
	return &Service{store: st, authz: authz}
}

// List returns positions, optionally filtered to one portfolio. The
// filter is applied after authorization; position reads are not
// ownership-scoped. A filter referencing a nonexistent portfolio simply
// yields an empty result.
func (s *Service) List(_ context.Context, p auth.Principal, portfolioID *int64) ([]models.Position, error) {
	if err := s.authz.Authorize(p, auth.ObjectPosition, auth.PositionList); err != nil {
		return nil, err
	}

	all := s.store.List()
	if portfolioID == nil {
		return all, nil
	}

	filtered := make([]models.Position, 0, len(all))
	for _, rec := range all {
		if rec.PortfolioID != nil && *rec.PortfolioID == *portfolioID {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Get returns one position to any authenticated principal.
func (s *Service) Get(_ context.Context, p auth.Principal, id int64) (models.Position, error) {
	if err := s.authz.Authorize(p, auth.ObjectPosition, auth.PositionRead); err != nil {
		return models.Position{}, err
	}
	return s.store.Get(id)
}

// Create stores a new position. Admin only. The referenced portfolio is
// not checked for existence; dangling references are accepted.
func (s *Service) Create(_ context.Context, p auth.Principal, in models.Position) (models.Position, error) {
	if err := s.authz.Authorize(p, auth.ObjectPosition, auth.PositionCreate); err != nil {
		return models.Position{}, err
	}
	return s.store.Create(in), nil
}

// Update replaces a position. Admin only; the path id wins over any id
// the body carries.
func (s *Service) Update(_ context.Context, p auth.Principal, id int64, in models.Position) (models.Position, error) {
	if err := s.authz.Authorize(p, auth.ObjectPosition, auth.PositionUpdate); err != nil {
		return models.Position{}, err
	}
	return s.store.Update(id, in)
}

// Delete removes a position permanently. Admin only.
func (s *Service) Delete(_ context.Context, p auth.Principal, id int64) error {
	if err := s.authz.Authorize(p, auth.ObjectPosition, auth.PositionDelete); err != nil {
		return err
	}
	return s.store.Delete(id)
}
