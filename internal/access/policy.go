package access

import (
	"net/http"

	"github.com/google/uuid"
)

// Role of a requester. Anonymous requesters carry no role.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Resource kinds the policy knows about
type Resource string

const (
	ResourceTitle        Resource = "title"
	ResourceCategory     Resource = "category"
	ResourceGenre        Resource = "genre"
	ResourceReview       Resource = "review"
	ResourceComment      Resource = "comment"
	ResourceUsers        Resource = "users"
	ResourcePersonalInfo Resource = "personal_info"
)

// Capabilities are the operations a resource definition supports. Requests
// for an unsupported operation are denied before the rule list runs.
type Capabilities struct {
	List     bool
	Retrieve bool
	Create   bool
	Update   bool
	Delete   bool
}

var capabilities = map[Resource]Capabilities{
	ResourceTitle:        {List: true, Retrieve: true, Create: true, Update: true, Delete: true},
	ResourceCategory:     {List: true, Create: true, Delete: true},
	ResourceGenre:        {List: true, Create: true, Delete: true},
	ResourceReview:       {List: true, Retrieve: true, Create: true, Update: true, Delete: true},
	ResourceComment:      {List: true, Retrieve: true, Create: true, Update: true, Delete: true},
	ResourceUsers:        {List: true, Retrieve: true, Create: true, Update: true, Delete: true},
	ResourcePersonalInfo: {Retrieve: true, Update: true},
}

// ResourceCapabilities exposes the capability flags for a resource
func ResourceCapabilities(res Resource) Capabilities {
	return capabilities[res]
}

// Requester is the resolved identity of the caller. The zero value is an
// anonymous requester.
type Requester struct {
	ID            uuid.UUID
	Role          Role
	Authenticated bool
}

// Request is one access decision input: who, what, how, and the author of
// the target entity when authorship matters (review/comment mutations).
type Request struct {
	Requester Requester
	Resource  Resource
	Method    string
	AuthorID  *uuid.UUID
}

// Allow decides a request against the ordered rule list. It is a pure
// predicate: first matching rule wins, no side effects.
func Allow(req Request) bool {
	caps := capabilities[req.Resource]

	if !supports(caps, req.Method) {
		return false
	}

	// Rule 1: safe methods are open to everyone, except personal info,
	// which is only visible to its owner.
	if isSafeMethod(req.Method) {
		if req.Resource == ResourcePersonalInfo {
			return req.Requester.Authenticated
		}
		return true
	}

	// Rule 2: personal info mutation needs only a matching identity; the
	// route structurally addresses the requester's own record.
	if req.Resource == ResourcePersonalInfo {
		return req.Requester.Authenticated
	}

	switch req.Resource {
	case ResourceReview, ResourceComment:
		if !req.Requester.Authenticated {
			return false
		}
		// Rule 3: any authenticated user may create
		if req.Method == http.MethodPost {
			return true
		}
		// Rule 4: update/delete for staff or the original author
		if req.Requester.Role == RoleAdmin || req.Requester.Role == RoleModerator {
			return true
		}
		return req.AuthorID != nil && *req.AuthorID == req.Requester.ID

	case ResourceTitle, ResourceCategory, ResourceGenre, ResourceUsers:
		// Rule 5: catalog entities and the user collection are admin-write
		return req.Requester.Authenticated && req.Requester.Role == RoleAdmin
	}

	// Rule 6: deny
	return false
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func supports(caps Capabilities, method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return caps.List || caps.Retrieve
	case http.MethodPost:
		return caps.Create
	case http.MethodPatch:
		return caps.Update
	case http.MethodDelete:
		return caps.Delete
	default:
		// PUT and anything else is not part of the surface
		return false
	}
}
