package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Chris-Devine/codecamp/internal/service"
	"github.com/Chris-Devine/codecamp/pkg/httpx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

// DefaultCookieName is the session cookie name unless configuration says
// otherwise.
const DefaultCookieName = "codecamp_session"

// Failure bodies are uniform on purpose: an unknown username, a wrong
// password and an internal fault all look identical from outside, so the
// endpoints cannot be used to enumerate accounts.
const (
	loginFailedBody = "Failed to login"
	tokenFailedBody = "Failed to generate a token"
)

// TokenHandler serves POST /api/auth/token.
type TokenHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Issue Bearer Token
//	@Description	Verifies the supplied credentials and returns a short-lived signed JWT with the user's claims.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		CredentialsModel	true	"User credentials"
//	@Success		200			{object}	TokenModel			"token, expiration"
//	@Failure		400			{string}	string				"Failed to generate a token"
//	@Router			/api/auth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body CredentialsModel
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, tokenFailedBody)
		return
	}
	if err := validate.Struct(body); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, tokenFailedBody)
		return
	}

	issued, err := h.AuthService.IssueToken(ctx, body.UserName, body.Password)
	if err != nil {
		// The service has already logged the interesting failures; anything
		// unexpected is logged here before it disappears into the uniform body.
		if !errors.Is(err, service.ErrUserNotFound) &&
			!errors.Is(err, service.ErrInvalidCredentials) &&
			!errors.Is(err, service.ErrSigningFailed) {
			log.Error("token issuance failed", "err", err)
		}
		httpx.WriteText(w, http.StatusBadRequest, tokenFailedBody)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenModel{
		Token:      issued.Token,
		Expiration: issued.ExpiresAt.Format(time.RFC3339),
	})
}

// LoginHandler serves POST /api/auth/login, the session-cookie fallback for
// browser callers that cannot hold a bearer token.
type LoginHandler struct {
	SessionService   *service.SessionService
	CookieName       string
	SecureCookies    bool
	LockoutOnFailure bool
}

// ServeHTTP godoc
//
//	@Summary		Session Sign-In
//	@Description	Verifies the supplied credentials and sets an HttpOnly session cookie. Send rememberMe to keep the session across browser restarts.
//	@Tags			Auth
//	@Accept			json
//	@Param			credentials	body	CredentialsModel	true	"User credentials"
//	@Success		200			"session cookie set"
//	@Failure		400			{string}	string	"Failed to login"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body CredentialsModel
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, loginFailedBody)
		return
	}
	if err := validate.Struct(body); err != nil {
		httpx.WriteText(w, http.StatusBadRequest, loginFailedBody)
		return
	}

	opaque, session, err := h.SessionService.SignIn(ctx, body.UserName, body.Password, service.SignInOptions{
		Persistent:       body.RememberMe,
		LockoutOnFailure: h.LockoutOnFailure,
	})
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Error("sign-in failed", "err", err)
		}
		httpx.WriteText(w, http.StatusBadRequest, loginFailedBody)
		return
	}

	cookie := &http.Cookie{
		Name:     h.CookieName,
		Value:    opaque,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	// Session cookies without an expiry die with the browser; persistent
	// sessions get the server-side expiry so both sides agree.
	if session.Persistent {
		cookie.Expires = session.ExpiresAt
	}
	http.SetCookie(w, cookie)

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}

// LogoutHandler serves POST /api/auth/logout.
type LogoutHandler struct {
	SessionService *service.SessionService
	CookieName     string
	SecureCookies  bool
}

// ServeHTTP godoc
//
//	@Summary		Session Sign-Out
//	@Description	Deletes the server-side session and clears the cookie. Safe to call without a session.
//	@Tags			Auth
//	@Success		204	"session cleared"
//	@Router			/api/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if cookie, err := r.Cookie(h.CookieName); err == nil {
		if err := h.SessionService.SignOut(ctx, cookie.Value); err != nil {
			log.Warn("sign-out failed", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
