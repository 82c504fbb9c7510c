// Package portfolio implements the portfolio domain operations on top of
// the record store and the authorization engine.
package portfolio

import (
	"context"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/models"
	"github.com/folioworks/folio/internal/store"
)

// Service composes the portfolio store with the authorization engine.
// Every operation authorizes before touching the store; on deny nothing
// is read or written.
type Service struct {
	store *store.Store[models.Portfolio]
	authz *auth.Authorizer
}

// NewService constructs the service around its injected collaborators.
func NewService(st *store.Store[models.Portfolio], authz *auth.Authorizer) *Service {
	return &Service{store: st, authz: authz}
}

// List returns the portfolios visible to the principal: everything for
// admins, owned records for everyone else.
func (s *Service) List(_ context.Context, p auth.Principal) ([]models.Portfolio, error) {
	if err := s.authz.Authorize(p, auth.ObjectPortfolio, auth.PortfolioList); err != nil {
		return nil, err
	}

	all := s.store.List()
	visible := make([]models.Portfolio, 0, len(all))
	for _, rec := range all {
		if s.authz.CanSee(p, rec.Owner) {
			visible = append(visible, rec)
		}
	}
	return visible, nil
}

// Get returns one portfolio. Existence is confirmed before the ownership
// check, so a non-owner probing a real id is told "forbidden" while a
// nonexistent id yields "not found". This existence leak matches the
// system's long-standing observable behavior and is covered by tests.
func (s *Service) Get(_ context.Context, p auth.Principal, id int64) (models.Portfolio, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return models.Portfolio{}, err
	}
	if err := s.authz.AuthorizeOwned(p, auth.ObjectPortfolio, auth.PortfolioRead, rec.Owner); err != nil {
		return models.Portfolio{}, err
	}
	return rec, nil
}

// Create stores a new portfolio. The owner is unconditionally stamped
// with the caller's identity; any owner the body supplied is discarded.
func (s *Service) Create(_ context.Context, p auth.Principal, in models.Portfolio) (models.Portfolio, error) {
	if err := s.authz.Authorize(p, auth.ObjectPortfolio, auth.PortfolioCreate); err != nil {
		return models.Portfolio{}, err
	}

	in.Owner = p.Subject
	if in.Positions == nil {
		in.Positions = []models.Position{}
	}
	return s.store.Create(in), nil
}

// Update replaces a portfolio. Admin only; the role check runs before the
// existence lookup, so non-admins get "forbidden" regardless of whether
// the id exists. The stored owner is preserved: updates can never
// transfer ownership.
func (s *Service) Update(_ context.Context, p auth.Principal, id int64, in models.Portfolio) (models.Portfolio, error) {
	if err := s.authz.Authorize(p, auth.ObjectPortfolio, auth.PortfolioUpdate); err != nil {
		return models.Portfolio{}, err
	}

	current, err := s.store.Get(id)
	if err != nil {
		return models.Portfolio{}, err
	}

	in.Owner = current.Owner
	if in.Positions == nil {
		in.Positions = []models.Position{}
	}
	return s.store.Update(id, in)
}

// Delete removes a portfolio permanently. Admin only, same check order as
// Update.
func (s *Service) Delete(_ context.Context, p auth.Principal, id int64) error {
	if err := s.authz.Authorize(p, auth.ObjectPortfolio, auth.PortfolioDelete); err != nil {
		return err
	}
	return s.store.Delete(id)
}
