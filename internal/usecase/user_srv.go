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

type UserService interface {
	List(ctx context.Context, requester access.Requester, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Create(ctx context.Context, requester access.Requester, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetByUsername(ctx context.Context, requester access.Requester, username string) (*response.UserResponse, error)
	UpdateByUsername(ctx context.Context, requester access.Requester, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteByUsername(ctx context.Context, requester access.Requester, username string) error

	GetProfile(ctx context.Context, requester access.Requester) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, requester access.Requester, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

// allow runs the policy for the user collection. The decision comes before
// any lookup so a denied requester learns nothing about existing usernames.
func (us *userService) allow(requester access.Requester, method string) error {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourceUsers,
		Method:    method,
	}) {
		return fmt.Errorf("forbidden")
	}
	return nil
}

func (us *userService) List(ctx context.Context, requester access.Requester, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := us.allow(requester, http.MethodGet); err != nil {
		return nil, err
	}

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (us *userService) Create(ctx context.Context, requester access.Requester, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := us.allow(requester, http.MethodPost); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := us.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		us.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username already taken")
	}

	existing, err = us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		us.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	role := entity.RoleUser
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		us.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("create user: %w", err)
	}

	us.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetByUsername(ctx context.Context, requester access.Requester, username string) (*response.UserResponse, error) {
	if err := us.allow(requester, http.MethodGet); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateByUsername(ctx context.Context, requester access.Requester, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := us.allow(requester, http.MethodPatch); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := us.findUser(ctx, username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("update user: %w", err)
	}

	us.log.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteByUsername(ctx context.Context, requester access.Requester, username string) error {
	if err := us.allow(requester, http.MethodDelete); err != nil {
		return err
	}

	user, err := us.findUser(ctx, username)
	if err != nil {
		return err
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("delete user: %w", err)
	}

	return nil
}

func (us *userService) GetProfile(ctx context.Context, requester access.Requester) (*response.UserResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourcePersonalInfo,
		Method:    http.MethodGet,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	user, err := us.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		us.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", requester.ID.String()))
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile is self-service: the role field is not part of the request
// shape, so role escalation is structurally impossible here.
func (us *userService) UpdateProfile(ctx context.Context, requester access.Requester, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if !access.Allow(access.Request{
		Requester: requester,
		Resource:  access.ResourcePersonalInfo,
		Method:    http.MethodPatch,
	}) {
		return nil, fmt.Errorf("forbidden")
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := us.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		us.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", requester.ID.String()))
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	applyProfileFields(user, req.Username, req.Email, req.FirstName, req.LastName, req.Bio)
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		us.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", requester.ID.String()))
		return nil, fmt.Errorf("update profile: %w", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) findUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", username)
	}
	return user, nil
}

func applyProfileFields(user *entity.User, username, email, firstName, lastName, bio *string) {
	if username != nil {
		user.Username = *username
	}
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = firstName
	}
	if lastName != nil {
		user.LastName = lastName
	}
	if bio != nil {
		user.Bio = bio
	}
}
