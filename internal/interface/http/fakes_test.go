package handlers

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/internal/domain/entity"
	"github.com/communitydesk/bulletin-board/internal/domain/repository"
	"github.com/communitydesk/bulletin-board/internal/interface/middleware"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
	"github.com/communitydesk/bulletin-board/pkg/validation"
)

var setupOnce sync.Once

func testSetup() {
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestCookies() *helpers.Manager {
	return helpers.NewCookie("", false)
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
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

func (r *memUserRepo) Upsert(_ context.Context, u *entity.User) (*entity.User, error) {
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

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
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

var _ repository.UserRepository = (*memUserRepo)(nil)

type memSessionStore struct {
	mu       sync.Mutex
	next     int
	sessions map[string]application.Identity
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]application.Identity{}}
}

func (s *memSessionStore) Create(_ context.Context, id application.Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := fmt.Sprintf("tok-%d", s.next)
	s.sessions[token] = id
	return token, nil
}

func (s *memSessionStore) Get(_ context.Context, token string) (*application.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.sessions[token]; ok {
		return &id, nil
	}
	return nil, application.ErrSessionNotFound
}

func (s *memSessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

var _ application.SessionStore = (*memSessionStore)(nil)

type memPostRepo struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	posts  []entity.Post
	names  map[string]string
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{now: time.Now(), names: map[string]string{}}
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.now = r.now.Add(time.Second)
	p.ID = r.nextID
	p.CreatedAt = r.now
	r.posts = append(r.posts, *p)
	return nil
}

func (r *memPostRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Post, error) {
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

func (r *memPostRepo) ListAll(_ context.Context) ([]entity.Post, error) {
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

func (r *memPostRepo) DeleteOwned(_ context.Context, postID int64, requesterID string) error {
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

func (r *memPostRepo) setName(ownerID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[ownerID] = name
}

func (r *memPostRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

var _ repository.PostRepository = (*memPostRepo)(nil)

// testApp wires real services over in-memory stores behind the routes the
// app exposes, mirroring the module registration in the router package.
type testApp struct {
	engine   *gin.Engine
	users    *memUserRepo
	sessions *memSessionStore
	posts    *memPostRepo
	identity *application.IdentityService
}

func newTestApp() *testApp {
	testSetup()

	users := newMemUserRepo()
	sessions := newMemSessionStore()
	posts := newMemPostRepo()
	logger := quietLogger()

	identity := application.NewIdentityService(users, sessions, logger, 4, nil)
	postSvc := application.NewPostService(posts, logger)

	authH := NewAuthHandler(identity, logger, newTestCookies(), time.Hour)
	postH := NewPostHandler(postSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.GET("/logout", authH.Logout)
	api.GET("/posts", postH.ListAll)

	protected := api.Group("")
	protected.Use(middleware.Auth(sessions, logger))
	protected.GET("/posts/mine", postH.ListMine)
	protected.POST("/posts", postH.Create)
	protected.DELETE("/posts/:id", postH.Delete)

	return &testApp{engine: r, users: users, sessions: sessions, posts: posts, identity: identity}
}
