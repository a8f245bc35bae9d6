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

type TitleService interface {
	List(ctx context.Context, filter request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetByID(ctx context.Context, titleID string) (*response.TitleResponse, error)
	Create(ctx context.Context, requester access.Requester, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, requester access.Requester, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, requester access.Requester, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (ts *titleService) List(ctx context.Context, filter request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := ts.repo.Title.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		ts.log.Error("Failed to list titles", zap.Error(err))
		return nil, fmt.Errorf("list titles: %w", err)
	}

	total, err := ts.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		ts.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("count titles: %w", err)
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := ts.buildResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.PerPage, total), nil
}

func (ts *titleService) GetByID(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID format")
	}

	title, err := ts.repo.Title.FindByID(ctx, id)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title not found")
	}

	return ts.buildResponse(ctx, title)
}

func (ts *titleService) Create(ctx context.Context, requester access.Requester, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceTitle,
		Method:    http.MethodPost,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ts.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	categoryID, err := ts.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := ts.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := ts.repo.Title.Create(ctx, title); err != nil {
		ts.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create title: %w", err)
	}

	if err := ts.linkGenres(ctx, title.ID, genres); err != nil {
		return nil, err
	}

	ts.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return ts.buildResponse(ctx, &repository.RatedTitle{Title: *title})
}

func (ts *titleService) Update(ctx context.Context, requester access.Requester, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceTitle,
		Method:    http.MethodPatch,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ts.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID format")
	}

	rated, err := ts.repo.Title.FindByID(ctx, id)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("find title: %w", err)
	}
	if rated == nil {
		return nil, fmt.Errorf("title not found")
	}

	title := &rated.Title
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := ts.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := ts.repo.Title.Update(ctx, title); err != nil {
		ts.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("update title: %w", err)
	}

	// A genre list in the request replaces the existing set
	if req.Genres != nil {
		genres, err := ts.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := ts.repo.TitleGenre.DeleteByTitleID(ctx, title.ID); err != nil {
			ts.log.Error("Failed to clear genre links", zap.Error(err), zap.String("title_id", titleID))
			return nil, fmt.Errorf("update title genres: %w", err)
		}
		if err := ts.linkGenres(ctx, title.ID, genres); err != nil {
			return nil, err
		}
	}

	ts.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return ts.buildResponse(ctx, rated)
}

func (ts *titleService) Delete(ctx context.Context, requester access.Requester, titleID string) error {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceTitle,
		Method:    http.MethodDelete,
	}) {
		return fmt.Errorf("forbidden")
	}

	id, err := uuid.Parse(titleID)
	if err != nil {
		return fmt.Errorf("invalid title ID format")
	}

	if err := ts.repo.Title.Delete(ctx, id); err != nil {
		return err
	}

	return nil
}

// resolveCategory maps an optional category slug to its ID. An unknown slug is
// a client error, not a silent nil.
func (ts *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil {
		return nil, nil
	}

	category, err := ts.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		ts.log.Error("Failed to resolve category", zap.Error(err), zap.String("slug", *slug))
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("invalid category slug %s", *slug)
	}

	return &category.ID, nil
}

func (ts *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := ts.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		ts.log.Error("Failed to resolve genres", zap.Error(err))
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	if len(genres) != len(slugs) {
		found := make(map[string]bool, len(genres))
		for _, genre := range genres {
			found[genre.Slug] = true
		}
		for _, slug := range slugs {
			if !found[slug] {
				return nil, fmt.Errorf("invalid genre slug %s", slug)
			}
		}
	}

	return genres, nil
}

func (ts *titleService) linkGenres(ctx context.Context, titleID uuid.UUID, genres []*entity.Genre) error {
	for _, genre := range genres {
		link := &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			TitleID: titleID,
			GenreID: genre.ID,
		}
		if err := ts.repo.TitleGenre.Create(ctx, link); err != nil {
			ts.log.Error("Failed to link genre",
				zap.Error(err),
				zap.String("title_id", titleID.String()),
				zap.String("genre", genre.Slug))
			return fmt.Errorf("link genre %s: %w", genre.Slug, err)
		}
	}
	return nil
}

func (ts *titleService) buildResponse(ctx context.Context, title *repository.RatedTitle) (*response.TitleResponse, error) {
	resp := &response.TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Rating:      title.Rating,
		CreatedAt:   title.CreatedAt,
	}

	if title.CategoryID != nil {
		category, err := ts.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			ts.log.Error("Failed to load title category",
				zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("load title category: %w", err)
		}
		if category != nil {
			c := response.CategoryToResponse(category)
			resp.Category = &c
		}
	}

	genres, err := ts.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		ts.log.Error("Failed to load title genres",
			zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("load title genres: %w", err)
	}
	resp.Genres = response.GenresToResponse(genres)

	return resp, nil
}
