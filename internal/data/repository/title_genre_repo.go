package repository

import (
	"context"
	"fmt"

	"ratings-catalog/internal/data/entity"
	"ratings-catalog/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	Create(ctx context.Context, link *entity.TitleGenre) error
	DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) Create(ctx context.Context, link *entity.TitleGenre) error {
	query := `
		INSERT INTO title_genres (id, title_id, genre_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		link.ID,
		link.TitleID,
		link.GenreID,
		link.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to link title to genre",
			zap.Error(err),
			zap.String("title_id", link.TitleID.String()),
			zap.String("genre_id", link.GenreID.String()),
		)
		return fmt.Errorf("link title %s to genre %s: %w",
			link.TitleID.String(), link.GenreID.String(), err)
	}

	return nil
}

func (r *titleGenreRepository) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID)
	if err != nil {
		r.log.Error("Failed to unlink title genres",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("unlink genres for title %s: %w", titleID.String(), err)
	}

	return nil
}
