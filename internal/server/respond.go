package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/folioworks/folio/internal/auth"
)

// writeJSON serializes v with the given status. Encoding failures after
// the header is written can only be logged by the recoverer; in practice
// the domain models always encode.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into dst, rejecting unknown garbage
// but tolerating unknown fields the way the rest of the API does.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// principal pulls the authenticated identity off the request context.
// The authn middleware always sets it on /api routes; its absence means
// the handler was mounted without authentication.
func principal(r *http.Request) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return auth.Principal{}, auth.ErrUnauthenticated
	}
	return p, nil
}

var errBadID = errors.New("invalid id")

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
