package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jawafdehi/jawaf/internal/domain"
	"github.com/jawafdehi/jawaf/internal/service"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// IdentifyIdentity resolves the bearer token, if any, into an Actor on the
// request context. No token or a bad token leaves the request anonymous;
// permission predicates decide what the anonymous context may do.
func (m *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 || split[0] != "Bearer" {
				span.RecordError(errors.New("invalid authorization header"))
				goto skipCheckAuthorization
			}

			actor, err := m.auth.ResolveActor(split[1])
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: ResolveActor failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.ActorCtxKey, actor)
			span.SetAttributes(attribute.String("ActorId", actor.ID))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ActorFrom extracts the resolved actor, nil for anonymous callers.
func ActorFrom(ctx context.Context) *domain.Actor {
	actor, _ := ctx.Value(domain.ActorCtxKey).(*domain.Actor)
	return actor
}
