package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/shared/auth"
	"vocalhub-backend/internal/shared/response"
	"vocalhub-backend/pkg/jwt"
)

const actorKey = "actor"

// TokenValidator is satisfied by *jwt.Manager
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Authenticate requires a valid bearer token and stores the Actor on the context
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromHeader(c, tokens)
		if !ok {
			response.Unauthorized(c, "missing or invalid access token")
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuthenticate attaches the Actor when a valid token is present and
// lets anonymous requests through otherwise
func OptionalAuthenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := actorFromHeader(c, tokens); ok {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// CurrentActor returns the request's Actor, anonymous when unauthenticated
func CurrentActor(c *gin.Context) auth.Actor {
	if v, exists := c.Get(actorKey); exists {
		if actor, ok := v.(auth.Actor); ok {
			return actor
		}
	}
	return auth.Anonymous()
}

func actorFromHeader(c *gin.Context, tokens TokenValidator) (auth.Actor, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return auth.Actor{}, false
	}

	// "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return auth.Actor{}, false
	}

	claims, err := tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("token rejected")
		return auth.Actor{}, false
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return auth.Actor{}, false
	}

	return auth.Actor{
		AccountID: accountID,
		Email:     claims.Email,
		Role:      auth.Role(claims.Role),
	}, true
}
