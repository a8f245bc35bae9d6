package usecase

import (
	"ratings-catalog/internal/data/repository"
	"ratings-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Title    TitleService
	Category CategoryService
	Genre    GenreService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	mailer := utils.NewMailer(config.Email, log)

	return &Service{
		Auth:     NewAuthService(repo, config, mailer, log),
		User:     NewUserService(repo.User, log),
		Title:    NewTitleService(repo, log),
		Category: NewCategoryService(repo.Category, log),
		Genre:    NewGenreService(repo.Genre, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}
