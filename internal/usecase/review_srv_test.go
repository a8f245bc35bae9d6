package usecase

import (
	"context"
	"testing"
	"time"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users *fakeUserRepo, username string, role entity.UserRole) access.Requester {
	t.Helper()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:  username,
		Email:     username + "@example.com",
		Role:      role,
		Confirmed: true,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return access.Requester{ID: user.ID, Role: access.Role(role), Authenticated: true}
}

func seedTitle(t *testing.T, titles *fakeTitleRepo, name string) *entity.Title {
	t.Helper()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: name,
		Year: 2020,
	}
	require.NoError(t, titles.Create(context.Background(), title))
	return title
}

func defaultPage() *request.PaginatedRequest {
	return &request.PaginatedRequest{Page: 1, PerPage: 10}
}

func TestCreateReview(t *testing.T) {
	repo, users, titles, _, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	author := seedUser(t, users, "alice", entity.RoleUser)
	title := seedTitle(t, titles, "Some Film")

	result, err := svc.Create(context.Background(), author, title.ID.String(), &request.CreateReviewRequest{
		Text:  "Great watch",
		Score: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Author)
	assert.Equal(t, 8, result.Score)
	assert.Equal(t, title.ID.String(), result.TitleID)
}

func TestCreateReviewRequiresExistingTitle(t *testing.T) {
	repo, users, _, _, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	author := seedUser(t, users, "alice", entity.RoleUser)

	_, err := svc.Create(context.Background(), author, uuid.NewString(), &request.CreateReviewRequest{
		Text:  "Great watch",
		Score: 8,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSecondReviewOnSameTitleConflicts(t *testing.T) {
	repo, users, titles, _, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	author := seedUser(t, users, "alice", entity.RoleUser)
	title := seedTitle(t, titles, "Some Film")

	_, err := svc.Create(context.Background(), author, title.ID.String(), &request.CreateReviewRequest{
		Text: "First take", Score: 7,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), author, title.ID.String(), &request.CreateReviewRequest{
		Text: "Second take", Score: 9,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")

	// a different user still can
	other := seedUser(t, users, "bob", entity.RoleUser)
	_, err = svc.Create(context.Background(), other, title.ID.String(), &request.CreateReviewRequest{
		Text: "Other take", Score: 5,
	})
	assert.NoError(t, err)
}

func TestUpdateReviewAuthorship(t *testing.T) {
	repo, users, titles, _, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	author := seedUser(t, users, "alice", entity.RoleUser)
	other := seedUser(t, users, "bob", entity.RoleUser)
	moderator := seedUser(t, users, "mod", entity.RoleModerator)
	title := seedTitle(t, titles, "Some Film")

	created, err := svc.Create(context.Background(), author, title.ID.String(), &request.CreateReviewRequest{
		Text: "First take", Score: 7,
	})
	require.NoError(t, err)

	newText := "Edited take"

	// another regular user may not edit
	_, err = svc.Update(context.Background(), other, title.ID.String(), created.ID, &request.UpdateReviewRequest{
		Text: &newText,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	// the author may
	updated, err := svc.Update(context.Background(), author, title.ID.String(), created.ID, &request.UpdateReviewRequest{
		Text: &newText,
	})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)

	// a moderator may delete any review
	require.NoError(t, svc.Delete(context.Background(), moderator, title.ID.String(), created.ID))
}

func TestReviewReachedThroughWrongTitleIsNotFound(t *testing.T) {
	repo, users, titles, _, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	author := seedUser(t, users, "alice", entity.RoleUser)
	titleA := seedTitle(t, titles, "Film A")
	titleB := seedTitle(t, titles, "Film B")

	created, err := svc.Create(context.Background(), author, titleA.ID.String(), &request.CreateReviewRequest{
		Text: "On A", Score: 6,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), titleB.ID.String(), created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTitleRatingIsMeanOfScores(t *testing.T) {
	repo, users, titles, _, _ := testRepository()
	reviewSvc := NewReviewService(repo, testLogger())
	titleSvc := NewTitleService(repo, testLogger())

	title := seedTitle(t, titles, "Some Film")

	// no reviews yet: rating is absent, not zero
	before, err := titleSvc.GetByID(context.Background(), title.ID.String())
	require.NoError(t, err)
	assert.Nil(t, before.Rating)

	for i, score := range []int{4, 7} {
		requester := seedUser(t, users, []string{"alice", "bob"}[i], entity.RoleUser)
		_, err := reviewSvc.Create(context.Background(), requester, title.ID.String(), &request.CreateReviewRequest{
			Text: "take", Score: score,
		})
		require.NoError(t, err)
	}

	after, err := titleSvc.GetByID(context.Background(), title.ID.String())
	require.NoError(t, err)
	require.NotNil(t, after.Rating)
	assert.InDelta(t, 5.5, *after.Rating, 0.001)
}

func TestListReviewsPaginates(t *testing.T) {
	repo, users, titles, reviews, _ := testRepository()
	svc := NewReviewService(repo, testLogger())

	title := seedTitle(t, titles, "Some Film")
	for i := 0; i < 3; i++ {
		requester := seedUser(t, users, []string{"a", "b", "c"}[i]+"user", entity.RoleUser)
		review := &entity.Review{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			TitleID:    title.ID,
			AuthorID:   requester.ID,
			Text:       "take",
			Score:      5,
		}
		require.NoError(t, reviews.Create(context.Background(), review))
	}

	result, err := svc.List(context.Background(), title.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
