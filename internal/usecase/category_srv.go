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

type CategoryService interface {
	List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	Create(ctx context.Context, requester access.Requester, req *request.ClassificationRequest) (*response.CategoryResponse, error)
	DeleteBySlug(ctx context.Context, requester access.Requester, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log.With(zap.String("service", "category")),
	}
}

func (cs *categoryService) List(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := cs.categoryRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		cs.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	total, err := cs.categoryRepo.CountAll(ctx, search)
	if err != nil {
		cs.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("count categories: %w", err)
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.PerPage, total), nil
}

func (cs *categoryService) Create(ctx context.Context, requester access.Requester, req *request.ClassificationRequest) (*response.CategoryResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceCategory,
		Method:    http.MethodPost,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := cs.categoryRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		cs.log.Error("Failed to check category slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("check category slug: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("category slug already exists")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := cs.categoryRepo.Create(ctx, category); err != nil {
		cs.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("create category: %w", err)
	}

	cs.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (cs *categoryService) DeleteBySlug(ctx context.Context, requester access.Requester, slug string) error {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceCategory,
		Method:    http.MethodDelete,
	}) {
		return fmt.Errorf("forbidden")
	}

	return cs.categoryRepo.DeleteBySlug(ctx, slug)
}
