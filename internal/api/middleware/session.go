package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/vetlink/session-gateway/internal/core/domain"
	"github.com/vetlink/session-gateway/internal/core/ports"
)

// CookieName is the browser cookie binding a browser to its session record.
const CookieName = "vetlink_session"

const sessionCtxKey = "session"

// CookieCodec signs session ids into the browser cookie as a compact JWT so
// a session id cannot be forged. The upstream bearer token never travels in
// the cookie; it stays in the session store.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

// Encode wraps a session id in a signed token.
func (cc *CookieCodec) Encode(sessionID string) (string, error) {
	claims := jwt.MapClaims{"sid": sessionID}
	if cc.ttl > 0 {
		claims["exp"] = time.Now().Add(cc.ttl).Unix()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
}

// Decode extracts the session id from a cookie value. Any tampering or
// expiry yields an error; callers fall back to a fresh anonymous session.
func (cc *CookieCodec) Decode(value string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("cookie missing session id")
	}
	return sid, nil
}

// Session hydrates the request's session from the durable store and makes it
// available both on the echo context (for handlers and guards) and on the
// request context (for the backend client's bearer injection). A missing or
// invalid cookie yields a fresh anonymous session and a new cookie.
func Session(svc ports.SessionService, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				if decoded, err := codec.Decode(ck.Value); err == nil {
					sid = decoded
				}
			}

			fresh := sid == ""
			if fresh {
				sid = newSessionID()
			}

			sess := svc.Hydrate(c.Request().Context(), sid)

			if fresh {
				if value, err := codec.Encode(sid); err == nil {
					c.SetCookie(&http.Cookie{
						Name:     CookieName,
						Value:    value,
						Path:     "/",
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			c.SetRequest(c.Request().WithContext(domain.WithSession(c.Request().Context(), sess)))
			c.Set(sessionCtxKey, sess)
			return next(c)
		}
	}
}

// SessionFromEcho returns the session hydrated by the Session middleware,
// or nil when the middleware did not run.
func SessionFromEcho(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionCtxKey).(*domain.Session)
	return sess
}

func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: time-based id, still unique enough per browser
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
