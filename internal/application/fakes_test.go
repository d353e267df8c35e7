package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	"github.com/communitydesk/bulletin-board/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository mirroring the constraint
// behavior of the postgres implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[u.ID]; ok {
		cp := *existing
		return &cp, nil
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, repository.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// fakeSessionStore keeps sessions in a map; tokens never expire here.
type fakeSessionStore struct {
	mu       sync.Mutex
	next     int
	sessions map[string]Identity
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]Identity{}}
}

func (s *fakeSessionStore) Create(_ context.Context, id Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := fmt.Sprintf("tok-%d", s.next)
	s.sessions[token] = id
	return token, nil
}

func (s *fakeSessionStore) Get(_ context.Context, token string) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.sessions[token]; ok {
		return &id, nil
	}
	return nil, ErrSessionNotFound
}

func (s *fakeSessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ SessionStore = (*fakeSessionStore)(nil)

// fakePostRepo mirrors the ordering and collapsed-delete semantics of the
// postgres implementation. names maps owner ids to display names for the
// feed join.
type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	posts  []entity.Post
	names  map[string]string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{now: time.Now(), names: map[string]string{}}
}

func (r *fakePostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.now = r.now.Add(time.Second)
	p.ID = r.nextID
	p.CreatedAt = r.now
	r.posts = append(r.posts, *p)
	return nil
}

func (r *fakePostRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Post, 0)
	for i := len(r.posts) - 1; i >= 0; i-- {
		if r.posts[i].OwnerID == ownerID {
			out = append(out, r.posts[i])
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListAll(_ context.Context) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Post, 0)
	for i := len(r.posts) - 1; i >= 0; i-- {
		p := r.posts[i]
		p.PostedBy = r.names[p.OwnerID]
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePostRepo) DeleteOwned(_ context.Context, postID int64, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == postID && p.OwnerID == requesterID {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePostRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

var _ repository.PostRepository = (*fakePostRepo)(nil)
