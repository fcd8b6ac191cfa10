package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mhgamal/hr_approvals_app/internal/core/domain"
)

// actorCtxKey is the key used to store the authenticated actor in the
// request context.
const actorCtxKey = contextKey("actor")

// GetActorFromContext retrieves the acting identity placed in the context by
// the identity middleware. It returns the actor and a boolean indicating if
// it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromCtx(c.Request.Context())
}

// GetActorFromCtx is the plain-context variant for non-gin callers.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}
