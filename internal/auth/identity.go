package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// identityKey is the gin context key under which the resolved identity is
// stored by the identity middleware.
const identityKey = "auth_identity"

// Identity is the claims set produced by a successful authentication. It is
// resolved once per request and carried through the gin context; handlers
// never re-parse credentials themselves.
type Identity struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []string  `json:"roles"`
}

// HasRole reports whether the identity carries the named role
// (case-insensitive, matching the role-name comparison used elsewhere).
func (id *Identity) HasRole(name string) bool {
	for _, r := range id.Roles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

// SetIdentity stashes the resolved identity in the request context.
func SetIdentity(c *gin.Context, id *Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity resolved for this request, or nil when the
// request is anonymous.
func IdentityFrom(c *gin.Context) *Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return id
}
