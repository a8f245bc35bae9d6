package usecase

import (
	"context"
	"testing"

	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (AuthService, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	repo, users, _, _, _ := testRepository()
	mailer := &fakeMailer{}
	return NewAuthService(repo, testConfig(), mailer, testLogger()), users, mailer
}

func TestRegisterCreatesUserAndSendsCode(t *testing.T) {
	svc, users, mailer := newAuthService(t)

	result, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "alice@example.com", result.Email)

	user, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.False(t, user.Confirmed)
	require.NotNil(t, user.ConfirmationHash)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alice@example.com", mailer.sent[0].To)
	assert.True(t, utils.CheckConfirmationCode(mailer.sent[0].Code, *user.ConfirmationHash))
}

func TestRegisterSamePairReissuesCode(t *testing.T) {
	svc, users, mailer := newAuthService(t)

	req := &request.RegisterRequest{Username: "alice", Email: "alice@example.com"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	firstCode, secondCode := mailer.sent[0].Code, mailer.sent[1].Code

	user, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user.ConfirmationHash)

	// only the latest code is usable
	assert.True(t, utils.CheckConfirmationCode(secondCode, *user.ConfirmationHash))
	if firstCode != secondCode {
		assert.False(t, utils.CheckConfirmationCode(firstCode, *user.ConfirmationHash))
	}
}

func TestRegisterRejectsMismatchedPair(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	// same username, different email
	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "other@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")

	// same email, different username
	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "bob", Email: "alice@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
}

func TestRegisterSurvivesMailerFailure(t *testing.T) {
	repo, _, _, _, _ := testRepository()
	mailer := &fakeMailer{failing: true}
	svc := NewAuthService(repo, testConfig(), mailer, testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com",
	})
	assert.NoError(t, err)
}

func TestIssueTokenSpendsTheCode(t *testing.T) {
	svc, users, mailer := newAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	code := mailer.sent[0].Code

	result, err := svc.IssueToken(context.Background(), &request.TokenRequest{
		Username: "alice", ConfirmationCode: code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := utils.ParseJWT(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(entity.RoleUser), claims.Role)

	user, err := users.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, user.Confirmed)
	assert.Nil(t, user.ConfirmationHash)

	// the code is single-use
	_, err = svc.IssueToken(context.Background(), &request.TokenRequest{
		Username: "alice", ConfirmationCode: code,
	})
	assert.Error(t, err)
}

func TestIssueTokenGenericRejection(t *testing.T) {
	svc, _, mailer := newAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	// wrong code and unknown username produce the same answer
	_, wrongCodeErr := svc.IssueToken(context.Background(), &request.TokenRequest{
		Username: "alice", ConfirmationCode: "000000x",
	})
	require.Error(t, wrongCodeErr)

	_, unknownUserErr := svc.IssueToken(context.Background(), &request.TokenRequest{
		Username: "nobody", ConfirmationCode: "123456",
	})
	require.Error(t, unknownUserErr)

	assert.Equal(t, wrongCodeErr.Error(), unknownUserErr.Error())
	assert.Contains(t, wrongCodeErr.Error(), "invalid username or confirmation code")
}
