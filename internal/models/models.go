// Package models defines the domain records managed by the Folio API.
package models

import "github.com/shopspring/decimal"

// Portfolio groups positions under a single owner. The Owner field is
// stamped from the authenticated caller at creation time and is never
// altered by updates. The embedded Positions slice is a denormalized
// convenience for API consumers; the authoritative link from a position to
// its portfolio is Position.PortfolioID.
type Portfolio struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
	Positions   []Position `json:"positions"`
}

// WithID returns a copy of the portfolio with the identifier set.
func (p Portfolio) WithID(id int64) Portfolio {
	p.ID = id
	return p
}

// Clone returns a deep copy so callers can never mutate stored records.
func (p Portfolio) Clone() Portfolio {
	if p.Positions != nil {
		positions := make([]Position, len(p.Positions))
		for i, pos := range p.Positions {
			positions[i] = pos.Clone()
		}
		p.Positions = positions
	}
	return p
}

// Position is a single holding. PortfolioID may reference a portfolio that
// no longer exists; referential integrity is intentionally not enforced.
// All scalar fields are nullable and carry no cross-field validation.
type Position struct {
	ID            int64            `json:"id"`
	PortfolioID   *int64           `json:"portfolioId"`
	Symbol        *string          `json:"symbol"`
	Quantity      *decimal.Decimal `json:"quantity"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice"`
}

// WithID returns a copy of the position with the identifier set.
func (p Position) WithID(id int64) Position {
	p.ID = id
	return p
}

// Clone returns a deep copy of the position, including pointer fields.
func (p Position) Clone() Position {
	p.PortfolioID = clonePtr(p.PortfolioID)
	p.Symbol = clonePtr(p.Symbol)
	p.Quantity = clonePtr(p.Quantity)
	p.PurchasePrice = clonePtr(p.PurchasePrice)
	p.CurrentPrice = clonePtr(p.CurrentPrice)
	return p
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
