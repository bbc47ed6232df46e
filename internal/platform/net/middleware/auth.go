package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "immersion/internal/platform/errors"
	pnet "immersion/internal/platform/net"
)

// AuthPort identifies the client calling the API
type AuthPort interface {
	// Parse returns the caller name or an unauthorized error
	Parse(r *http.Request) (caller string, err error)
}

// Auth rejects requests the port cannot identify; a nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithCaller(r.Context(), caller)))
		})
	}
}

// StaticToken is a shared bearer secret handed to the bot process
type StaticToken struct {
	Caller string
	Token  string
}

// Parse implements AuthPort
func (s StaticToken) Parse(r *http.Request) (string, error) {
	raw, ok := bearer(r.Header.Get("Authorization"))
	if !ok {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(raw), []byte(s.Token)) != 1 {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return s.Caller, nil
}

func bearer(h string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
