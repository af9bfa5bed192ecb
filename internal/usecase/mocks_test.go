package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

type mockUserRepository struct {
	users map[int64]domain.User

	createErr   error
	createCalls int
	createdUser domain.User
	nextID      int64

	touchCalls int
	touchErr   error
	touchedID  int64
	touchedAt  time.Time
}

func newMockUserRepository(users ...domain.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[int64]domain.User), nextID: 1}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, user domain.User) (int64, error) {
	m.createCalls++
	m.createdUser = user
	if m.createErr != nil {
		return 0, m.createErr
	}
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return 0, repository.ErrDuplicate
		}
	}
	id := m.nextID
	m.nextID++
	user.ID = id
	m.users[id] = user
	return id, nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		copied := user
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	return out, nil
}

func (m *mockUserRepository) TouchActivity(_ context.Context, id int64, at time.Time) error {
	m.touchCalls++
	m.touchedID = id
	m.touchedAt = at
	return m.touchErr
}

type mockBeerRepository struct {
	beers map[int64]domain.Beer

	createErr    error
	createCalls  int
	createdBeer  domain.Beer
	createAuthor int64
	createWindow time.Duration
	nextID       int64
}

func newMockBeerRepository(beers ...domain.Beer) *mockBeerRepository {
	m := &mockBeerRepository{beers: make(map[int64]domain.Beer), nextID: 1}
	for _, b := range beers {
		m.beers[b.ID] = b
		if b.ID >= m.nextID {
			m.nextID = b.ID + 1
		}
	}
	return m
}

func (m *mockBeerRepository) Create(_ context.Context, beer domain.Beer, authorID int64, window time.Duration) (int64, error) {
	m.createCalls++
	m.createdBeer = beer
	m.createAuthor = authorID
	m.createWindow = window
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := m.nextID
	m.nextID++
	beer.ID = id
	m.beers[id] = beer
	return id, nil
}

func (m *mockBeerRepository) GetByID(_ context.Context, id int64) (*domain.Beer, error) {
	if beer, ok := m.beers[id]; ok {
		copied := beer
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockBeerRepository) List(_ context.Context) ([]domain.Beer, error) {
	out := make([]domain.Beer, 0, len(m.beers))
	for _, beer := range m.beers {
		out = append(out, beer)
	}
	return out, nil
}

func (m *mockBeerRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.beers[id]
	return ok, nil
}

type mockGlassRepository struct {
	glasses map[int64]domain.Glass
	nextID  int64
}

func newMockGlassRepository(glasses ...domain.Glass) *mockGlassRepository {
	m := &mockGlassRepository{glasses: make(map[int64]domain.Glass), nextID: 1}
	for _, g := range glasses {
		m.glasses[g.ID] = g
		if g.ID >= m.nextID {
			m.nextID = g.ID + 1
		}
	}
	return m
}

func (m *mockGlassRepository) Create(_ context.Context, glass domain.Glass) (int64, error) {
	for _, existing := range m.glasses {
		if existing.Name == glass.Name {
			return 0, repository.ErrDuplicate
		}
	}
	id := m.nextID
	m.nextID++
	glass.ID = id
	m.glasses[id] = glass
	return id, nil
}

func (m *mockGlassRepository) GetByID(_ context.Context, id int64) (*domain.Glass, error) {
	if glass, ok := m.glasses[id]; ok {
		copied := glass
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockGlassRepository) List(_ context.Context) ([]domain.Glass, error) {
	out := make([]domain.Glass, 0, len(m.glasses))
	for _, glass := range m.glasses {
		out = append(out, glass)
	}
	return out, nil
}

func (m *mockGlassRepository) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.glasses[id]
	return ok, nil
}

func (m *mockGlassRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.glasses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.glasses, id)
	return nil
}

type mockReviewRepository struct {
	reviews map[int64]domain.Review

	createErr     error
	createCalls   int
	createdReview domain.Review
	recentCount   int
	recentErr     error
	nextID        int64
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{reviews: make(map[int64]domain.Review), nextID: 1}
}

func (m *mockReviewRepository) Create(_ context.Context, review domain.Review) (int64, error) {
	m.createCalls++
	m.createdReview = review
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := m.nextID
	m.nextID++
	review.ID = id
	m.reviews[id] = review
	return id, nil
}

func (m *mockReviewRepository) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	if review, ok := m.reviews[id]; ok {
		copied := review
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockReviewRepository) List(_ context.Context) ([]domain.Review, error) {
	out := make([]domain.Review, 0, len(m.reviews))
	for _, review := range m.reviews {
		out = append(out, review)
	}
	return out, nil
}

func (m *mockReviewRepository) ListByBeer(_ context.Context, beerID int64) ([]domain.Review, error) {
	out := make([]domain.Review, 0)
	for _, review := range m.reviews {
		if review.BeerID == beerID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (m *mockReviewRepository) CountRecent(context.Context, int64, int64, time.Time) (int, error) {
	return m.recentCount, m.recentErr
}

type mockFavoriteRepository struct {
	links map[int64]map[int64]bool

	addErr error
}

func newMockFavoriteRepository() *mockFavoriteRepository {
	return &mockFavoriteRepository{links: make(map[int64]map[int64]bool)}
}

func (m *mockFavoriteRepository) Add(_ context.Context, userID, beerID int64) (bool, error) {
	if m.addErr != nil {
		return false, m.addErr
	}
	set, ok := m.links[userID]
	if !ok {
		set = make(map[int64]bool)
		m.links[userID] = set
	}
	if set[beerID] {
		return false, nil
	}
	set[beerID] = true
	return true, nil
}

func (m *mockFavoriteRepository) Remove(_ context.Context, userID, beerID int64) (bool, error) {
	set, ok := m.links[userID]
	if !ok || !set[beerID] {
		return false, nil
	}
	delete(set, beerID)
	return true, nil
}

func (m *mockFavoriteRepository) Clear(_ context.Context, userID int64) (bool, error) {
	set, ok := m.links[userID]
	if !ok || len(set) == 0 {
		return false, nil
	}
	delete(m.links, userID)
	return true, nil
}

func (m *mockFavoriteRepository) Count(_ context.Context, userID int64) (int, error) {
	return len(m.links[userID]), nil
}

func (m *mockFavoriteRepository) List(_ context.Context, userID int64) ([]domain.Beer, error) {
	out := make([]domain.Beer, 0)
	for beerID := range m.links[userID] {
		out = append(out, domain.Beer{ID: beerID})
	}
	return out, nil
}

type mockEventPublisher struct {
	userEvents   []domain.UserRegisteredEvent
	beerEvents   []domain.BeerCreatedEvent
	reviewEvents []domain.ReviewCreatedEvent
	publishErr   error
}

func (m *mockEventPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	m.userEvents = append(m.userEvents, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishBeerCreated(_ context.Context, event domain.BeerCreatedEvent) error {
	m.beerEvents = append(m.beerEvents, event)
	return m.publishErr
}

func (m *mockEventPublisher) PublishReviewCreated(_ context.Context, event domain.ReviewCreatedEvent) error {
	m.reviewEvents = append(m.reviewEvents, event)
	return m.publishErr
}

// asValidation asserts the error is a field-keyed validation error.
func asValidation(err error) (*domain.ValidationError, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
