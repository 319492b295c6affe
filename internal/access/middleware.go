package access

import (
	"context"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextActor = "actor"

// ActorLoader resolves the authenticated user into an Actor.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID string) (Actor, error)
}

// Resolve loads the caller's profile once per request and stores the Actor on
// both the gin and the request context.
func Resolve(loader ActorLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.AbortWithError(c, apperror.ErrUnauthenticated)
			return
		}

		actor, err := loader.LoadActor(c.Request.Context(), userID)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), nil).Warn("resolve actor failed", zap.String("user_id", userID), zap.Error(err))
			response.AbortWithError(c, err)
			return
		}

		c.Set(ContextActor, actor)
		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// RequirePermission rejects the request unless the resolved Actor holds obj:act.
func RequirePermission(authz Authorizer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := FromGin(c)
		if !ok {
			response.AbortWithError(c, apperror.ErrUnauthenticated)
			return
		}
		if err := authz.Require(actor, obj, act); err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func FromGin(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}
