package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for postgres. Transactions snapshot the
// maps and restore them when fn fails.
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]entity.User
	reviews map[uuid.UUID]entity.Review

	// injected failures
	createReviewErr error
	listErr         error
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uuid.UUID]entity.User),
		reviews: make(map[uuid.UUID]entity.Review),
	}
}

func (s *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		User:   memUserRepo{s},
		Review: memReviewRepo{s},
	}
	repo.Tx = memTx{store: s, repo: repo}
	return repo
}

func (s *memStore) review(id uuid.UUID) (entity.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	return r, ok
}

func (s *memStore) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

type memTx struct {
	store *memStore
	repo  *repository.Repository
}

func (t memTx) WithinTransaction(_ context.Context, fn func(repo *repository.Repository) error) error {
	t.store.mu.Lock()
	users := make(map[uuid.UUID]entity.User, len(t.store.users))
	for k, v := range t.store.users {
		users[k] = v
	}
	reviews := make(map[uuid.UUID]entity.Review, len(t.store.reviews))
	for k, v := range t.store.reviews {
		reviews[k] = v
	}
	t.store.mu.Unlock()

	if err := fn(t.repo); err != nil {
		t.store.mu.Lock()
		t.store.users = users
		t.store.reviews = reviews
		t.store.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type memReviewRepo struct{ s *memStore }

func (r memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createReviewErr != nil {
		return r.s.createReviewErr
	}
	if review.Rating < 1 || review.Rating > 5 {
		return errors.New("check constraint violated")
	}
	r.s.reviews[review.ID] = *review
	return nil
}

func (r memReviewRepo) detail(review entity.Review) *entity.ReviewDetail {
	return &entity.ReviewDetail{Review: review, AuthorEmail: r.s.users[review.UserID].Email}
}

func (r memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ReviewDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	review, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	return r.detail(review), nil
}

func (r memReviewRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	review, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (r memReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.reviews[review.ID]
	if !ok {
		return errors.New("review not found")
	}
	existing.MovieName = review.MovieName
	existing.Rating = review.Rating
	existing.ReviewText = review.ReviewText
	existing.Sentiment = review.Sentiment
	existing.UpdatedAt = review.UpdatedAt
	r.s.reviews[review.ID] = existing
	return nil
}

func (r memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return errors.New("review not found")
	}
	delete(r.s.reviews, id)
	return nil
}

func (r memReviewRepo) List(_ context.Context, filter entity.ReviewFilter) ([]*entity.ReviewDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}

	out := make([]*entity.ReviewDetail, 0)
	for _, review := range r.s.reviews {
		if filter.Rating != nil && review.Rating != *filter.Rating {
			continue
		}
		out = append(out, r.detail(review))
	}

	desc := filter.SortOrder != entity.SortAsc
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		less, equal := compareReviews(a, b, filter.SortBy)
		if equal {
			return false
		}
		if desc {
			return !less
		}
		return less
	})
	return out, nil
}

func compareReviews(a, b *entity.ReviewDetail, by entity.SortField) (less, equal bool) {
	if by == entity.SortByRating && a.Rating != b.Rating {
		return a.Rating < b.Rating, false
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt), false
	}
	if a.ID != b.ID {
		return a.ID.String() < b.ID.String(), false
	}
	return false, true
}

func (r memReviewRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.ReviewDetail, error) {
	all, err := r.List(ctx, entity.ReviewFilter{SortBy: entity.SortByCreatedAt, SortOrder: entity.SortDesc})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.ReviewDetail, 0)
	for _, d := range all {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}
