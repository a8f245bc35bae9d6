package usecase

import (
	"context"
	"fmt"
	"strings"

	"ratings-catalog/internal/data/entity"
	"ratings-catalog/internal/data/repository"
	"ratings-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. Each mirrors the SQL behavior the real
// implementation has: nil for missing rows, "not found" errors on writes
// against missing rows.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := f.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range f.users {
		copied := *user
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	delete(f.users, id)
	return nil
}

type fakeTitleRepo struct {
	titles map[uuid.UUID]*entity.Title
	// reviews backs the derived rating, shared with the review fake
	reviews *fakeReviewRepo
}

func newFakeTitleRepo(reviews *fakeReviewRepo) *fakeTitleRepo {
	return &fakeTitleRepo{
		titles:  make(map[uuid.UUID]*entity.Title),
		reviews: reviews,
	}
}

func (f *fakeTitleRepo) rate(title *entity.Title) *repository.RatedTitle {
	rated := &repository.RatedTitle{Title: *title}
	if f.reviews == nil {
		return rated
	}

	var sum, count int
	for _, review := range f.reviews.reviews {
		if review.TitleID == title.ID {
			sum += review.Score
			count++
		}
	}
	if count > 0 {
		avg := float64(sum) / float64(count)
		rated.Rating = &avg
	}
	return rated
}

func (f *fakeTitleRepo) Create(_ context.Context, title *entity.Title) error {
	copied := *title
	f.titles[title.ID] = &copied
	return nil
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.RatedTitle, error) {
	if title, ok := f.titles[id]; ok {
		return f.rate(title), nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(_ context.Context, filter repository.TitleFilter, limit, offset int) ([]*repository.RatedTitle, error) {
	var out []*repository.RatedTitle
	for _, title := range f.titles {
		if filter.Name != "" && !strings.Contains(strings.ToLower(title.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != nil && title.Year != *filter.Year {
			continue
		}
		out = append(out, f.rate(title))
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTitleRepo) CountAll(_ context.Context, filter repository.TitleFilter) (int64, error) {
	all, _ := f.FindAll(context.Background(), filter, len(f.titles)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	if _, ok := f.titles[title.ID]; !ok {
		return fmt.Errorf("title %s not found", title.ID.String())
	}
	copied := *title
	f.titles[title.ID] = &copied
	return nil
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.titles[id]; !ok {
		return fmt.Errorf("title %s not found", id.String())
	}
	delete(f.titles, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	if review, ok := f.reviews[id]; ok {
		copied := *review
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			copied := *review
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByTitleAndAuthor(_ context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.TitleID == titleID && review.AuthorID == authorID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	var count int64
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return fmt.Errorf("review %s not found", review.ID.String())
	}
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.reviews[id]; !ok {
		return fmt.Errorf("review %s not found", id.String())
	}
	delete(f.reviews, id)
	return nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	if comment, ok := f.comments[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, comment := range f.comments {
		if comment.ReviewID == reviewID {
			copied := *comment
			out = append(out, &copied)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var count int64
	for _, comment := range f.comments {
		if comment.ReviewID == reviewID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return fmt.Errorf("comment %s not found", comment.ID.String())
	}
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.comments[id]; !ok {
		return fmt.Errorf("comment %s not found", id.String())
	}
	delete(f.comments, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if category, ok := f.categories[id]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, category := range f.categories {
		if search != "" && !strings.Contains(strings.ToLower(category.Name), strings.ToLower(search)) {
			continue
		}
		copied := *category
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, len(f.categories)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for id, category := range f.categories {
		if category.Slug == slug {
			delete(f.categories, id)
			return nil
		}
	}
	return fmt.Errorf("category %s not found", slug)
}

type fakeGenreRepo struct {
	genres map[uuid.UUID]*entity.Genre
	links  *fakeTitleGenreRepo
}

func newFakeGenreRepo(links *fakeTitleGenreRepo) *fakeGenreRepo {
	return &fakeGenreRepo{genres: make(map[uuid.UUID]*entity.Genre), links: links}
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	copied := *genre
	f.genres[genre.ID] = &copied
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, genre := range f.genres {
		if genre.Slug == slug {
			copied := *genre
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	wanted := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = true
	}

	var out []*entity.Genre
	for _, genre := range f.genres {
		if wanted[genre.Slug] {
			copied := *genre
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var out []*entity.Genre
	if f.links == nil {
		return out, nil
	}
	for _, link := range f.links.links {
		if link.TitleID == titleID {
			if genre, ok := f.genres[link.GenreID]; ok {
				copied := *genre
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, genre := range f.genres {
		if search != "" && !strings.Contains(strings.ToLower(genre.Name), strings.ToLower(search)) {
			continue
		}
		copied := *genre
		out = append(out, &copied)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeGenreRepo) CountAll(_ context.Context, search string) (int64, error) {
	all, _ := f.FindAll(context.Background(), search, len(f.genres)+1, 0)
	return int64(len(all)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for id, genre := range f.genres {
		if genre.Slug == slug {
			delete(f.genres, id)
			return nil
		}
	}
	return fmt.Errorf("genre %s not found", slug)
}

type fakeTitleGenreRepo struct {
	links map[uuid.UUID]*entity.TitleGenre
}

func newFakeTitleGenreRepo() *fakeTitleGenreRepo {
	return &fakeTitleGenreRepo{links: make(map[uuid.UUID]*entity.TitleGenre)}
}

func (f *fakeTitleGenreRepo) Create(_ context.Context, link *entity.TitleGenre) error {
	copied := *link
	f.links[link.ID] = &copied
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(_ context.Context, titleID uuid.UUID) error {
	for id, link := range f.links {
		if link.TitleID == titleID {
			delete(f.links, id)
		}
	}
	return nil
}

// fakeMailer records outgoing codes instead of delivering them
type fakeMailer struct {
	sent []struct {
		To   string
		Code string
	}
	failing bool
}

func (f *fakeMailer) SendConfirmationCode(to, _, code string) error {
	if f.failing {
		return fmt.Errorf("smtp unavailable")
	}
	f.sent = append(f.sent, struct {
		To   string
		Code string
	}{To: to, Code: code})
	return nil
}

var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.TitleRepository      = (*fakeTitleRepo)(nil)
	_ repository.ReviewRepository     = (*fakeReviewRepo)(nil)
	_ repository.CommentRepository    = (*fakeCommentRepo)(nil)
	_ repository.CategoryRepository   = (*fakeCategoryRepo)(nil)
	_ repository.GenreRepository      = (*fakeGenreRepo)(nil)
	_ repository.TitleGenreRepository = (*fakeTitleGenreRepo)(nil)
	_ utils.Mailer                    = (*fakeMailer)(nil)
)

// testRepository bundles all fakes the way repository.NewRepository does
func testRepository() (*repository.Repository, *fakeUserRepo, *fakeTitleRepo, *fakeReviewRepo, *fakeCommentRepo) {
	reviews := newFakeReviewRepo()
	links := newFakeTitleGenreRepo()
	users := newFakeUserRepo()
	titles := newFakeTitleRepo(reviews)
	comments := newFakeCommentRepo()

	repo := &repository.Repository{
		User:       users,
		Category:   newFakeCategoryRepo(),
		Genre:      newFakeGenreRepo(links),
		Title:      titles,
		TitleGenre: links,
		Review:     reviews,
		Comment:    comments,
	}
	return repo, users, titles, reviews, comments
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:          utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Confirmation: utils.ConfirmationConfig{Length: 6},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
