package usecase

import (
	"context"
	"testing"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, *fakeUserRepo) {
	t.Helper()
	_, users, _, _, _ := testRepository()
	return NewUserService(users, testLogger()), users
}

func TestListUsersIsPublic(t *testing.T) {
	svc, users := newUserService(t)
	seedUser(t, users, "alice", entity.RoleUser)
	seedUser(t, users, "bob", entity.RoleUser)

	result, err := svc.List(context.Background(), access.Requester{}, defaultPage())
	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	svc, users := newUserService(t)
	regular := seedUser(t, users, "alice", entity.RoleUser)
	moderator := seedUser(t, users, "mod", entity.RoleModerator)
	admin := seedUser(t, users, "root", entity.RoleAdmin)

	req := &request.CreateUserRequest{Username: "newbie", Email: "newbie@example.com"}

	_, err := svc.Create(context.Background(), regular, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	_, err = svc.Create(context.Background(), moderator, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	created, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, "newbie", created.Username)
	assert.Equal(t, string(entity.RoleUser), created.Role)
}

func TestAdminCanChangeRole(t *testing.T) {
	svc, users := newUserService(t)
	seedUser(t, users, "alice", entity.RoleUser)
	admin := seedUser(t, users, "root", entity.RoleAdmin)

	role := string(entity.RoleModerator)
	updated, err := svc.UpdateByUsername(context.Background(), admin, "alice", &request.UpdateUserRequest{
		Role: &role,
	})
	require.NoError(t, err)
	assert.Equal(t, role, updated.Role)
}

func TestDeleteUnknownUserIsNotFound(t *testing.T) {
	svc, users := newUserService(t)
	admin := seedUser(t, users, "root", entity.RoleAdmin)

	err := svc.DeleteByUsername(context.Background(), admin, "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProfileRequiresAuthentication(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.GetProfile(context.Background(), access.Requester{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	svc, users := newUserService(t)
	requester := seedUser(t, users, "alice", entity.RoleUser)

	bio := "I watch a lot of films"
	updated, err := svc.UpdateProfile(context.Background(), requester, &request.UpdateProfileRequest{
		Bio: &bio,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, bio, *updated.Bio)
	assert.Equal(t, string(entity.RoleUser), updated.Role)
}
