package middleware

import (
	"net/http"
	"strings"

	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/internal/domain/transition"
	"github.com/eusoumanoelnetto/marido-de-aluguel-carioca-sub000/pkg"

	"github.com/gin-gonic/gin"
)

// Session identity headers injected by the auth gateway. Token validation
// happens upstream; this service only lifts the resolved identity into the
// request context.
const (
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"

	actorContextKey = "actor"
)

var errMissingIdentity = pkg.NewDomainErrorSimple("MISSING_IDENTITY", "Missing or invalid session identity", http.StatusUnauthorized)

// RequireActor aborts requests that arrive without a resolvable actor
// identity and stores the actor for handlers downstream.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(HeaderUserEmail))
		role := transition.Role(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		if email == "" || (role != transition.RoleClient && role != transition.RoleProvider) {
			c.AbortWithStatusJSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
			return
		}
		c.Set(actorContextKey, transition.Actor{Role: role, Email: email})
		c.Next()
	}
}

// Actor returns the identity stored by RequireActor. The zero value is
// returned on routes that skipped the middleware.
func Actor(c *gin.Context) transition.Actor {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return transition.Actor{}
	}
	actor, _ := v.(transition.Actor)
	return actor
}
