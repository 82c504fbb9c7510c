package auth

// Action constants for authorization checks. These define every action the
// Folio API can request from the policy table.

// Portfolio actions.
const (
	// PortfolioCreate allows creating portfolios.
	PortfolioCreate = "portfolio:create"

	// PortfolioRead allows reading a single portfolio. For non-admins the
	// engine additionally scopes this to owned records.
	PortfolioRead = "portfolio:read"

	// PortfolioList allows listing portfolios. Non-admin results are
	// filtered to owned records.
	PortfolioList = "portfolio:list"

	// PortfolioUpdate allows replacing a portfolio.
	PortfolioUpdate = "portfolio:update"

	// PortfolioDelete allows deleting a portfolio.
	PortfolioDelete = "portfolio:delete"
)

// Position actions. Reads are open to any authenticated principal;
// mutations require the admin role.
const (
	PositionCreate = "position:create"
	PositionRead   = "position:read"
	PositionList   = "position:list"
	PositionUpdate = "position:update"
	PositionDelete = "position:delete"
)

// Object types for policy rules.
const (
	// ObjectPortfolio represents portfolio records.
	ObjectPortfolio = "portfolio"

	// ObjectPosition represents position records.
	ObjectPosition = "position"

	// ObjectAll is a wildcard matching any object type.
	ObjectAll = "*"
)
