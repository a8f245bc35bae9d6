package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/data/repository"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/internal/dto/response"
	"ratings-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetByID(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	Create(ctx context.Context, requester access.Requester, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, requester access.Requester, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, requester access.Requester, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (cs *commentService) List(ctx context.Context, titleID, reviewID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := cs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := cs.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		cs.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("list comments: %w", err)
	}

	total, err := cs.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		cs.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("count comments: %w", err)
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		author, err := cs.authorName(ctx, comment.AuthorID)
		if err != nil {
			return nil, err
		}
		commentResponses[i] = response.CommentToResponse(comment, author)
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.PerPage, total), nil
}

func (cs *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := cs.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	author, err := cs.authorName(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (cs *commentService) Create(ctx context.Context, requester access.Requester, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	review, err := cs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceComment,
		Method:    http.MethodPost,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: requester.ID,
		Text:     req.Text,
	}

	if err := cs.repo.Comment.Create(ctx, comment); err != nil {
		cs.log.Error("Failed to create comment", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("create comment: %w", err)
	}

	cs.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
		zap.String("author_id", requester.ID.String()))

	author, err := cs.authorName(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (cs *commentService) Update(ctx context.Context, requester access.Requester, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	comment, err := cs.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceComment,
		Method:    http.MethodPatch,
		AuthorID:  &comment.AuthorID,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := cs.repo.Comment.Update(ctx, comment); err != nil {
		cs.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("update comment: %w", err)
	}

	author, err := cs.authorName(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, author)
	return &resp, nil
}

func (cs *commentService) Delete(ctx context.Context, requester access.Requester, titleID, reviewID, commentID string) error {
	comment, err := cs.resolveComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceComment,
		Method:    http.MethodDelete,
		AuthorID:  &comment.AuthorID,
	}) {
		return fmt.Errorf("forbidden")
	}

	if err := cs.repo.Comment.Delete(ctx, comment.ID); err != nil {
		cs.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

// resolveReview walks the title/review path segments and rejects mismatched
// pairs the same way missing rows are rejected.
func (cs *commentService) resolveReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID format")
	}

	title, err := cs.repo.Title.FindByID(ctx, tid)
	if err != nil {
		cs.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title not found")
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format")
	}

	review, err := cs.repo.Review.FindByID(ctx, rid)
	if err != nil {
		cs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != tid {
		return nil, fmt.Errorf("review not found")
	}

	return review, nil
}

func (cs *commentService) resolveComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := cs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format")
	}

	comment, err := cs.repo.Comment.FindByID(ctx, id)
	if err != nil {
		cs.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment not found")
	}

	return comment, nil
}

func (cs *commentService) authorName(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := cs.repo.User.FindByID(ctx, authorID)
	if err != nil {
		cs.log.Error("Failed to load comment author",
			zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("load author: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}
