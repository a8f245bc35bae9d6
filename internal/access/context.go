package access

import (
	"context"

	"ratings-catalog/pkg/utils"
)

// RequesterFromContext rebuilds the requester set by the auth middleware.
// Returns the anonymous requester when no identity is present.
func RequesterFromContext(ctx context.Context) Requester {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return Requester{}
	}

	role, _ := utils.GetRoleFromContext(ctx)

	return Requester{
		ID:            userID,
		Role:          Role(role),
		Authenticated: true,
	}
}
