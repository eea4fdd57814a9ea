package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"blog-service/internal/model"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*model.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return uuid.Nil, &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	id := uuid.New()
	cloned := *user
	cloned.ID = id
	f.users[id] = &cloned
	return id, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *u
	return &cloned, nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) add(user *model.User) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	cloned := *user
	cloned.ID = id
	f.users[id] = &cloned
	return id
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*model.Post
	seq   int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cloned := *post
	cloned.ID = uuid.New()
	f.seq++
	// monotonically increasing creation order without sleeping
	cloned.CreatedAt = cloned.CreatedAt.AddDate(0, 0, f.seq)
	cloned.UpdatedAt = cloned.CreatedAt
	f.posts[cloned.ID] = &cloned
	out := cloned
	return &out, nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *p
	return &cloned, nil
}

func (f *fakePostRepo) sorted() []model.Post {
	all := make([]model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func (f *fakePostRepo) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.sorted()
	if offset >= len(all) {
		return []model.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakePostRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Post{}
	for _, p := range f.sorted() {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts), nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.posts[post.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.ImageURL = post.ImageURL
	cloned := *existing
	return &cloned, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

type publishedEvent struct {
	subject string
	postID  uuid.UUID
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) PublishPostCreated(post *model.Post, creatorName string) error {
	return f.record("posts.created", post.ID)
}

func (f *fakePublisher) PublishPostUpdated(post *model.Post, creatorName string) error {
	return f.record("posts.updated", post.ID)
}

func (f *fakePublisher) PublishPostDeleted(postID uuid.UUID) error {
	return f.record("posts.deleted", postID)
}

func (f *fakePublisher) record(subject string, postID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{subject: subject, postID: postID})
	return nil
}

func (f *fakePublisher) snapshot() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}
