package auth

import (
	"strings"
	"sync"
)

// PermissionKind is the enumerated operation category a page permission
// grants. The integer values are persisted in the page_permissions table.
type PermissionKind int

const (
	PermissionRead PermissionKind = iota + 1
	PermissionWrite
	PermissionUpdate
	PermissionDelete
)

// String returns the kind's name as used in policy names and responses.
func (k PermissionKind) String() string {
	switch k {
	case PermissionRead:
		return "Read"
	case PermissionWrite:
		return "Write"
	case PermissionUpdate:
		return "Update"
	case PermissionDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// PermissionKindForMethod maps an HTTP verb to the permission kind a route
// with that verb requires.
func PermissionKindForMethod(method string) PermissionKind {
	switch method {
	case "POST":
		return PermissionWrite
	case "PUT", "PATCH":
		return PermissionUpdate
	case "DELETE":
		return PermissionDelete
	default:
		return PermissionRead
	}
}

var policyNameReplacer = strings.NewReplacer("/", "_", " ", "_")

// PolicyName derives the stable registry key for a permission requirement:
// the kind's name and the page URL joined by an underscore, with path
// separators and spaces replaced by underscores. "Read" + "/users" becomes
// "Read__users".
func PolicyName(kind PermissionKind, pageURL string) string {
	return kind.String() + "_" + policyNameReplacer.Replace(pageURL)
}

// Requirement is a single permission demanded by a route: the caller must
// hold a grant of Kind on PageURL.
type Requirement struct {
	Kind    PermissionKind
	PageURL string
}

// PolicyRegistry maps synthesized policy names to their requirements. It is
// populated during route registration at startup and read-only afterwards;
// it is constructed in main and injected rather than held as package state.
type PolicyRegistry struct {
	mu       sync.RWMutex
	policies map[string]Requirement
}

// NewPolicyRegistry returns an empty registry.
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{policies: make(map[string]Requirement)}
}

// Register records the requirement under its derived policy name and returns
// that name. Registering the same (kind, pageURL) pair again is a no-op; the
// first requirement object wins.
func (r *PolicyRegistry) Register(kind PermissionKind, pageURL string) string {
	name := PolicyName(kind, pageURL)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.policies[name]; !exists {
		r.policies[name] = Requirement{Kind: kind, PageURL: pageURL}
	}
	return name
}

// Lookup returns the requirement registered under name.
func (r *PolicyRegistry) Lookup(name string) (Requirement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.policies[name]
	return req, ok
}

// Len reports how many policies have been registered.
func (r *PolicyRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.policies)
}
