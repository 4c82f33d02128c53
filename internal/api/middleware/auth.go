package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gunungclimbing/storefront/internal/errors"
	"github.com/gunungclimbing/storefront/internal/utils/response"
)

const SessionCookieName = "admin_session"

// AdminAuth gates the dashboard behind the shared admin password. A
// successful login issues a signed, expiring session cookie; there are no
// user accounts.
type AdminAuth struct {
	password   string
	sessionKey []byte
	sessionTTL time.Duration
}

func NewAdminAuth(password string, sessionKey []byte, sessionTTL time.Duration) *AdminAuth {
	return &AdminAuth{
		password:   password,
		sessionKey: sessionKey,
		sessionTTL: sessionTTL,
	}
}

func (a *AdminAuth) VerifyPassword(candidate string) bool {
	if a.password == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.password)) == 1
}

func (a *AdminAuth) IssueSessionCookie(w http.ResponseWriter) error {
	expiresAt := time.Now().Add(a.sessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signed, err := token.SignedString(a.sessionKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (a *AdminAuth) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (a *AdminAuth) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			logger.Warn("Missing admin session cookie")
			response.Error(w, errors.UnauthorizedError("Admin session required"))

			return
		}

		token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.BadRequestError("unexpected signing method")
			}

			return a.sessionKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("Invalid admin session")
			response.Error(w, errors.UnauthorizedError("Invalid or expired session"))

			return
		}

		logger.Info("Admin authenticated")

		next.ServeHTTP(w, r)
	}
}
