package repository

import (
	"context"
	"fmt"
	"strings"

	"ratings-catalog/internal/data/entity"
	"ratings-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TitleFilter narrows the title listing. Zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// RatedTitle is a title with its derived average review score. Rating is nil
// when the title has no reviews.
type RatedTitle struct {
	entity.Title
	Rating *float64
}

type TitleRepository interface {
	Create(ctx context.Context, title *entity.Title) error
	FindByID(ctx context.Context, id uuid.UUID) (*RatedTitle, error)
	FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*RatedTitle, error)
	CountAll(ctx context.Context, filter TitleFilter) (int64, error)
	Update(ctx context.Context, title *entity.Title) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleRepository(db database.PgxIface, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:  db,
		log: log.With(zap.String("repository", "title")),
	}
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title) error {
	query := `
		INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.CreatedAt,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return fmt.Errorf("create title %s: %w", title.Name, err)
	}

	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*RatedTitle, error) {
	// Rating is computed per read, never stored. AVG over zero rows is NULL,
	// which is exactly the contract for an unreviewed title.
	query := `
		SELECT t.id, t.name, t.year, t.description, t.category_id,
		       t.created_at, t.updated_at, AVG(rv.score)::float8
		FROM titles t
		LEFT JOIN reviews rv ON rv.title_id = t.id
		WHERE t.id = $1
		GROUP BY t.id
	`

	var title RatedTitle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
		&title.Rating,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("find title by ID %s: %w", id.String(), err)
	}

	return &title, nil
}

// buildFilter appends WHERE clauses for the active filters and returns the
// collected args. argOffset counts args already bound by the caller.
func buildFilter(qb *strings.Builder, filter TitleFilter, argOffset int) []any {
	var args []any
	argCount := argOffset

	if filter.CategorySlug != "" {
		argCount++
		qb.WriteString(fmt.Sprintf(
			" AND t.category_id = (SELECT id FROM categories WHERE slug = $%d)", argCount))
		args = append(args, filter.CategorySlug)
	}

	if filter.GenreSlug != "" {
		argCount++
		qb.WriteString(fmt.Sprintf(
			` AND EXISTS (
				SELECT 1 FROM title_genres tg
				JOIN genres g ON g.id = tg.genre_id
				WHERE tg.title_id = t.id AND g.slug = $%d
			)`, argCount))
		args = append(args, filter.GenreSlug)
	}

	if filter.Name != "" {
		argCount++
		qb.WriteString(fmt.Sprintf(" AND t.name ILIKE '%%' || $%d || '%%'", argCount))
		args = append(args, filter.Name)
	}

	if filter.Year != nil {
		argCount++
		qb.WriteString(fmt.Sprintf(" AND t.year = $%d", argCount))
		args = append(args, *filter.Year)
	}

	return args
}

func (r *titleRepository) FindAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]*RatedTitle, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT t.id, t.name, t.year, t.description, t.category_id,
		       t.created_at, t.updated_at, AVG(rv.score)::float8
		FROM titles t
		LEFT JOIN reviews rv ON rv.title_id = t.id
		WHERE 1=1`)

	args := []any{}
	args = append(args, buildFilter(&qb, filter, 0)...)

	qb.WriteString(fmt.Sprintf(`
		GROUP BY t.id
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to list titles",
			zap.Error(err),
			zap.String("category", filter.CategorySlug),
			zap.String("genre", filter.GenreSlug),
			zap.String("name", filter.Name),
		)
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var titles []*RatedTitle
	for rows.Next() {
		var title RatedTitle
		err := rows.Scan(
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.CategoryID,
			&title.CreatedAt,
			&title.UpdatedAt,
			&title.Rating,
		)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles = append(titles, &title)
	}

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter TitleFilter) (int64, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM titles t WHERE 1=1`)

	args := buildFilter(&qb, filter, 0)

	var count int64
	err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count titles", zap.Error(err))
		return 0, fmt.Errorf("count titles: %w", err)
	}

	return count, nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title) error {
	query := `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		title.ID,
		title.Name,
		title.Year,
		title.Description,
		title.CategoryID,
		title.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return fmt.Errorf("update title %s: %w", title.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", title.ID.String())
	}

	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Reviews, their comments, and genre links go with the title (FK cascade)
	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("delete title %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s not found", id.String())
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}
