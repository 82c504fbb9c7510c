package server

import (
	"errors"
	"net/http"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/store"
)

// writeError maps domain errors to their HTTP status. Unknown errors are
// reported as 500 without leaking internals to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
	case errors.Is(err, auth.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
