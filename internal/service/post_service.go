package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"blog-service/internal/apperr"
	"blog-service/internal/events"
	"blog-service/internal/model"
	"blog-service/internal/repository"
	"blog-service/internal/storage"
)

// PerPage is the fixed page size for post listings.
const PerPage = 2

type PostInput struct {
	Title    string
	Content  string
	ImageURL string
}

type PostPage struct {
	Posts      []model.Post
	TotalPosts int
}

type PostService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input PostInput) (*model.Post, error)
	List(ctx context.Context, page int) (*PostPage, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error)
	Get(ctx context.Context, postID uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, postID, userID uuid.UUID, input PostInput) (*model.Post, error)
	Delete(ctx context.Context, postID, userID uuid.UUID) error
}

type postService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	publisher events.EventPublisher
	images    *storage.ImageStore
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	publisher events.EventPublisher,
	images *storage.ImageStore,
) PostService {
	return &postService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
		images:    images,
	}
}

func (s *postService) Create(ctx context.Context, creatorID uuid.UUID, input PostInput) (*model.Post, error) {
	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Authentication("Invalid user!")
		}
		return nil, err
	}

	post := &model.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: creator.ID,
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	go s.publisher.PublishPostCreated(created, creator.Name)

	return created, nil
}

func (s *postService) List(ctx context.Context, page int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, PerPage, (page-1)*PerPage)
	if err != nil {
		return nil, err
	}

	return &PostPage{Posts: posts, TotalPosts: total}, nil
}

func (s *postService) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Post, error) {
	return s.postRepo.ListByCreator(ctx, creatorID)
}

func (s *postService) Get(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, postID, userID uuid.UUID, input PostInput) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.CreatorID != userID {
		return nil, apperr.Authorization("Not Authorized")
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.ImageURL != "" && input.ImageURL != "undefined" {
		post.ImageURL = input.ImageURL
	}

	updated, err := s.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	creatorName := ""
	if creator, err := s.userRepo.FindByID(ctx, post.CreatorID); err == nil {
		creatorName = creator.Name
	}

	go s.publisher.PublishPostUpdated(updated, creatorName)

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	if post.CreatorID != userID {
		return apperr.Authorization("Not Authorized")
	}

	s.images.RemoveLogged(post.ImageURL)

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	go s.publisher.PublishPostDeleted(postID)

	return nil
}
