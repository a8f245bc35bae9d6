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

func seedReview(t *testing.T, reviews *fakeReviewRepo, titleID uuid.UUID, author access.Requester) *entity.Review {
	t.Helper()
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    titleID,
		AuthorID:   author.ID,
		Text:       "take",
		Score:      6,
	}
	require.NoError(t, reviews.Create(context.Background(), review))
	return review
}

func TestCreateAndListComments(t *testing.T) {
	repo, users, titles, reviews, _ := testRepository()
	svc := NewCommentService(repo, testLogger())

	reviewer := seedUser(t, users, "alice", entity.RoleUser)
	commenter := seedUser(t, users, "bob", entity.RoleUser)
	title := seedTitle(t, titles, "Some Film")
	review := seedReview(t, reviews, title.ID, reviewer)

	created, err := svc.Create(context.Background(), commenter, title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "Agreed"})
	require.NoError(t, err)
	assert.Equal(t, "bob", created.Author)
	assert.Equal(t, review.ID.String(), created.ReviewID)

	listed, err := svc.List(context.Background(), title.ID.String(), review.ID.String(), defaultPage())
	require.NoError(t, err)
	require.Len(t, listed.Data, 1)
	assert.Equal(t, "Agreed", listed.Data[0].Text)
}

func TestCommentUnderWrongTitleIsNotFound(t *testing.T) {
	repo, users, titles, reviews, _ := testRepository()
	svc := NewCommentService(repo, testLogger())

	reviewer := seedUser(t, users, "alice", entity.RoleUser)
	titleA := seedTitle(t, titles, "Film A")
	titleB := seedTitle(t, titles, "Film B")
	review := seedReview(t, reviews, titleA.ID, reviewer)

	// the review exists, but not under this title
	_, err := svc.Create(context.Background(), reviewer, titleB.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "Lost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCommentMutationAuthorship(t *testing.T) {
	repo, users, titles, reviews, _ := testRepository()
	svc := NewCommentService(repo, testLogger())

	reviewer := seedUser(t, users, "alice", entity.RoleUser)
	commenter := seedUser(t, users, "bob", entity.RoleUser)
	other := seedUser(t, users, "carol", entity.RoleUser)
	moderator := seedUser(t, users, "mod", entity.RoleModerator)
	title := seedTitle(t, titles, "Some Film")
	review := seedReview(t, reviews, title.ID, reviewer)

	created, err := svc.Create(context.Background(), commenter, title.ID.String(), review.ID.String(),
		&request.CreateCommentRequest{Text: "Agreed"})
	require.NoError(t, err)

	newText := "Changed my mind"

	// a stranger cannot edit
	_, err = svc.Update(context.Background(), other, title.ID.String(), review.ID.String(), created.ID,
		&request.UpdateCommentRequest{Text: &newText})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")

	// the author can
	updated, err := svc.Update(context.Background(), commenter, title.ID.String(), review.ID.String(), created.ID,
		&request.UpdateCommentRequest{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)

	// a moderator can delete anyone's comment
	require.NoError(t, svc.Delete(context.Background(), moderator, title.ID.String(), review.ID.String(), created.ID))

	_, err = svc.GetByID(context.Background(), title.ID.String(), review.ID.String(), created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
