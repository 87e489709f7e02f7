package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"backend/internal/auth"
	"backend/internal/repository"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// Config carries the authorization settings read from the environment.
type Config struct {
	// PublicEndpoints are path prefixes that bypass every requirement,
	// matched case-insensitively.
	PublicEndpoints []string
	// PermissionAuthEnabled disables permission evaluation entirely when
	// false; authenticated-only checks still apply.
	PermissionAuthEnabled bool
}

// Authenticator is the part of the auth service the middleware needs.
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (*auth.Identity, error)
}

// Authorizer resolves the request identity once per request and evaluates
// route requirements against the role-permission join engine. It is
// constructed in main with its policy registry and injected into route
// registration; nothing here is package-global.
type Authorizer struct {
	authn    Authenticator
	grants   repository.GrantRepository
	registry *auth.PolicyRegistry
	cfg      Config
}

func NewAuthorizer(authn Authenticator, grants repository.GrantRepository, registry *auth.PolicyRegistry, cfg Config) *Authorizer {
	return &Authorizer{authn: authn, grants: grants, registry: registry, cfg: cfg}
}

// Registry exposes the policy registry for introspection endpoints and tests.
func (a *Authorizer) Registry() *auth.PolicyRegistry {
	return a.registry
}

func (a *Authorizer) isPublic(path string) bool {
	for _, prefix := range a.cfg.PublicEndpoints {
		if prefix == "" {
			continue
		}
		if len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}

// ResolveIdentity parses Basic credentials and authenticates them, stashing
// the identity in the request context. It never aborts: a missing, malformed
// or unauthenticated header just leaves the request anonymous, and the
// requirement middlewares decide whether that matters for the route.
func (a *Authorizer) ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, ok, err := auth.ParseBasicCredentials(c.GetHeader("Authorization"))
		if err != nil || !ok {
			c.Next()
			return
		}

		identity, err := a.authn.Authenticate(c.Request.Context(), creds.Login, creds.Password)
		if err != nil {
			c.Next()
			return
		}

		auth.SetIdentity(c, identity)
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests with 401. Public endpoints
// bypass the check.
func (a *Authorizer) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		if auth.IdentityFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
			return
		}
		c.Next()
	}
}

// RequirePermission registers a (kind, pageURL) policy at route-registration
// time and returns the middleware enforcing it. Evaluation is fail-closed: a
// requirement is only ever marked satisfied, and anything that prevents that
// (missing grant, missing policy, query failure) ends in a deny, never a 500.
func (a *Authorizer) RequirePermission(kind auth.PermissionKind, pageURL string) gin.HandlerFunc {
	policyName := a.registry.Register(kind, pageURL)

	return func(c *gin.Context) {
		if a.isPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		identity := auth.IdentityFrom(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
			return
		}

		if !a.cfg.PermissionAuthEnabled {
			c.Next()
			return
		}

		requirement, ok := a.registry.Lookup(policyName)
		if !ok {
			log.Printf("authorization: policy %q not registered, denying", policyName)
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "access denied"))
			return
		}

		granted, err := a.grants.HasGrant(c.Request.Context(), identity.UserID, requirement.PageURL, requirement.Kind)
		if err != nil {
			// Treat lookup failures as "requirement not satisfied".
			log.Printf("authorization: grant lookup failed for user %s policy %q: %v", identity.UserID, policyName, err)
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "access denied"))
			return
		}
		if !granted {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "access denied"))
			return
		}

		c.Next()
	}
}
