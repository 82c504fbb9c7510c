package server

import (
	"net/http"
	"time"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/directory"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type whoamiResponse struct {
	Subject string   `json:"subject"`
	Groups  []string `json:"groups"`
	Roles   []string `json:"roles"`
}

// HandleLogin exchanges directory credentials for a bearer token. Failed
// authentication is always reported as 401 without distinguishing unknown
// users from bad passwords.
func HandleLogin(dir directory.Directory, tokens *auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		identity, err := dir.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}

		token, expiry, err := tokens.Issue(identity.Username, identity.Groups)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiry,
		})
	}
}

// HandleWhoAmI reports the authenticated principal back to the caller.
func HandleWhoAmI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principal(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, whoamiResponse{
			Subject: p.Subject,
			Groups:  p.Groups,
			Roles:   p.Roles,
		})
	}
}
