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

type GenreService interface {
	List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	Create(ctx context.Context, requester access.Requester, req *request.ClassificationRequest) (*response.GenreResponse, error)
	DeleteBySlug(ctx context.Context, requester access.Requester, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (gs *genreService) List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := gs.genreRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		gs.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}

	total, err := gs.genreRepo.CountAll(ctx, search)
	if err != nil {
		gs.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("count genres: %w", err)
	}

	return response.NewPaginatedResponse(
		response.GenresToResponse(genres), req.Page, req.PerPage, total), nil
}

func (gs *genreService) Create(ctx context.Context, requester access.Requester, req *request.ClassificationRequest) (*response.GenreResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceGenre,
		Method:    http.MethodPost,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		gs.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := gs.genreRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		gs.log.Error("Failed to check genre slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("check genre slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("genre slug already exists")
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := gs.genreRepo.Create(ctx, genre); err != nil {
		gs.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	gs.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (gs *genreService) DeleteBySlug(ctx context.Context, requester access.Requester, slug string) error {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceGenre,
		Method:    http.MethodDelete,
	}) {
		return fmt.Errorf("forbidden")
	}

	return gs.genreRepo.DeleteBySlug(ctx, slug)
}
