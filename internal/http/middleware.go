package http

import (
	"net/http"
	"strings"

	"github.com/Chris-Devine/codecamp/pkg/httpx"
	"github.com/Chris-Devine/codecamp/pkg/jwtx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

// requireAuth guards mutating endpoints. A request authenticates with either
// a bearer token or the session cookie; the resolved username and the method
// used land on the context for handlers and the request log.
func (r *Router) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		log := slogx.FromContext(ctx)

		if token, ok := bearerToken(req); ok {
			claims, err := r.verifier.Verify(token)
			if err != nil {
				log.Info("bearer token rejected", "err", err)
				writeUnauthorized(w)
				return
			}

			subject, _ := claims.GetString(jwtx.ClaimSubject)
			next.ServeHTTP(w, req.WithContext(httpx.WithUser(ctx, subject, "bearer")))
			return
		}

		if cookie, err := req.Cookie(r.CookieName); err == nil {
			session, err := r.SessionService.Resolve(ctx, cookie.Value)
			if err == nil {
				next.ServeHTTP(w, req.WithContext(httpx.WithUser(ctx, session.Username, "session")))
				return
			}
			log.Info("session cookie rejected", "err", err)
		}

		writeUnauthorized(w)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="codecamp"`)
	httpx.WriteJSON(w, http.StatusUnauthorized, ErrorModel{Error: "authentication required"})
}
