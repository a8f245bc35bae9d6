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

type ReviewService interface {
	List(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetByID(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	Create(ctx context.Context, requester access.Requester, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, requester access.Requester, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, requester access.Requester, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (rs *reviewService) List(ctx context.Context, titleID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	tid, err := rs.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := rs.repo.Review.FindByTitleID(ctx, tid, req.Limit(), req.Offset())
	if err != nil {
		rs.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := rs.repo.Review.CountByTitleID(ctx, tid)
	if err != nil {
		rs.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		author, err := rs.authorName(ctx, review.AuthorID)
		if err != nil {
			return nil, err
		}
		reviewResponses[i] = response.ReviewToResponse(review, author)
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (rs *reviewService) GetByID(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := rs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	author, err := rs.authorName(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (rs *reviewService) Create(ctx context.Context, requester access.Requester, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// The title is part of the path, so an unknown title answers before the
	// policy does.
	tid, err := rs.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceReview,
		Method:    http.MethodPost,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := rs.repo.Review.FindByTitleAndAuthor(ctx, tid, requester.ID)
	if err != nil {
		rs.log.Error("Failed to check existing review",
			zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("title already reviewed by this user")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  tid,
		AuthorID: requester.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := rs.repo.Review.Create(ctx, review); err != nil {
		rs.log.Error("Failed to create review", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("create review: %w", err)
	}

	rs.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.String("author_id", requester.ID.String()))

	author, err := rs.authorName(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (rs *reviewService) Update(ctx context.Context, requester access.Requester, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := rs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceReview,
		Method:    http.MethodPatch,
		AuthorID:  &review.AuthorID,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := rs.repo.Review.Update(ctx, review); err != nil {
		rs.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	rs.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	author, err := rs.authorName(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, author)
	return &resp, nil
}

func (rs *reviewService) Delete(ctx context.Context, requester access.Requester, titleID, reviewID string) error {
	review, err := rs.resolveReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceReview,
		Method:    http.MethodDelete,
		AuthorID:  &review.AuthorID,
	}) {
		return fmt.Errorf("forbidden")
	}

	if err := rs.repo.Review.Delete(ctx, review.ID); err != nil {
		rs.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	return nil
}

func (rs *reviewService) resolveTitle(ctx context.Context, titleID string) (uuid.UUID, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid title ID format")
	}

	title, err := rs.repo.Title.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return uuid.Nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return uuid.Nil, fmt.Errorf("title not found")
	}

	return id, nil
}

// resolveReview loads the review and checks it belongs to the title in the
// path. A review reached through the wrong title does not exist.
func (rs *reviewService) resolveReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := rs.resolveTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format")
	}

	review, err := rs.repo.Review.FindByID(ctx, id)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil || review.TitleID != tid {
		return nil, fmt.Errorf("review not found")
	}

	return review, nil
}

func (rs *reviewService) authorName(ctx context.Context, authorID uuid.UUID) (string, error) {
	user, err := rs.repo.User.FindByID(ctx, authorID)
	if err != nil {
		rs.log.Error("Failed to load review author",
			zap.Error(err), zap.String("author_id", authorID.String()))
		return "", fmt.Errorf("load author: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}
