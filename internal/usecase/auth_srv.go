package usecase

import (
	"context"
	"fmt"
	"time"

	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/data/repository"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/internal/dto/response"
	"ratings-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegistrationResponse, error)
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer utils.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mailer utils.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mailer: mailer,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates or reuses a user record and issues a fresh single-use
// confirmation code. Registering the same (username, email) pair again is
// idempotent: the previous code is replaced by a new one.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegistrationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}

	if user != nil && user.Email != req.Email {
		return nil, fmt.Errorf("username already taken")
	}

	if user == nil {
		emailOwner, err := s.repo.User.FindByEmail(ctx, req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to check email")
		}
		if emailOwner != nil {
			return nil, fmt.Errorf("email already registered")
		}
	}

	code := utils.GenerateConfirmationCode(s.config.Confirmation.Length)
	hash, err := utils.HashConfirmationCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("failed to generate confirmation code")
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username:         req.Username,
			Email:            req.Email,
			Role:             entity.RoleUser,
			ConfirmationHash: &hash,
		}
		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("failed to create account")
		}
	} else {
		user.ConfirmationHash = &hash
		user.UpdatedAt = now
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to reissue confirmation code",
				zap.Error(err), zap.String("username", req.Username))
			return nil, fmt.Errorf("failed to reissue confirmation code")
		}
	}

	// Delivery failure does not fail the registration; the client can
	// simply register again for a new code.
	if err := s.mailer.SendConfirmationCode(user.Email, user.Username, code); err != nil {
		s.log.Warn("Confirmation code delivery failed",
			zap.Error(err), zap.String("username", user.Username))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.RegistrationResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// IssueToken exchanges a valid (username, confirmation code) pair for a
// signed session token and invalidates the code. Unknown usernames and wrong
// codes produce the same answer.
func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token issuance",
			zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}

	// One generic answer regardless of which half of the pair was wrong
	if user == nil || user.ConfirmationHash == nil ||
		!utils.CheckConfirmationCode(req.ConfirmationCode, *user.ConfirmationHash) {
		s.log.Warn("Token issuance rejected", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid username or confirmation code")
	}

	// The code is single-use: spend it before handing out the token
	user.ConfirmationHash = nil
	user.Confirmed = true
	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to invalidate confirmation code",
			zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to issue token")
	}

	token, err := utils.GenerateJWT(
		user.ID.String(),
		user.Username,
		string(user.Role),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{Token: token}, nil
}
