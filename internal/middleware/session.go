package middleware

import (
	"errors"
	"net/http"

	"github.com/artium/indicacoes-api/internal/session"
	"github.com/artium/indicacoes-api/pkg/jwt"
	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// VisitorSessionCookieName is the cookie that carries the signed session token
	VisitorSessionCookieName = "artium_session"

	// SessionIDContextKey holds the visitor session id
	SessionIDContextKey = "visitor_session_id"

	// SelectorContextKey holds the visitor's *session.Selector
	SelectorContextKey = "visitor_selector"
)

var ErrNoVisitorSession = errors.New("no visitor session")

// CookieOptions controls the session cookie attributes
type CookieOptions struct {
	Domain string
	Secure bool
}

// VisitorSessionMiddleware binds each browser to a server-side form selector.
// A missing, expired or tampered cookie starts a fresh session.
func VisitorSessionMiddleware(tokens *jwt.TokenManager, store *session.Store, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""

		if cookie, err := c.Cookie(VisitorSessionCookieName); err == nil && cookie != "" {
			claims, err := tokens.ValidateToken(cookie)
			if err != nil {
				logger.Debug("Discarding visitor session cookie", zap.Error(err))
			} else {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := tokens.GenerateToken(sessionID)
			if err != nil {
				logger.LogError(err, "Failed to issue visitor session")
				_ = c.Error(err) //nolint:errcheck // attached for request logging
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			setSessionCookie(c, token, int(tokens.GetExpirationTime().Seconds()), opts)
		}

		c.Set(SessionIDContextKey, sessionID)
		c.Set(SelectorContextKey, store.GetOrCreate(sessionID))

		c.Next()
	}
}

// GetSelector returns the selector bound by VisitorSessionMiddleware
func GetSelector(c *gin.Context) (*session.Selector, error) {
	value, exists := c.Get(SelectorContextKey)
	if !exists {
		return nil, ErrNoVisitorSession
	}
	selector, ok := value.(*session.Selector)
	if !ok || selector == nil {
		return nil, ErrNoVisitorSession
	}
	return selector, nil
}

func setSessionCookie(c *gin.Context, token string, ttlSeconds int, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		VisitorSessionCookieName,
		token,
		ttlSeconds,
		"/",
		opts.Domain,
		opts.Secure,
		true, // HttpOnly
	)
}
