package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"blog-service/internal/apperr"
	"blog-service/internal/model"
	"blog-service/internal/repository"
	"blog-service/internal/token"
)

const pgUniqueViolation = "23505"

type AuthData struct {
	Token  string
	UserID string
}

type AuthService interface {
	Signup(ctx context.Context, email, name, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*AuthData, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Service
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Signup(ctx context.Context, email, name, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashedPassword),
		Status:       model.DefaultStatus,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperr.Conflict("User already exists!")
		}
		return nil, err
	}

	user.ID = newID

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthData, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Authentication("User not found!")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Authentication("Incorrect Password!")
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthData{Token: signed, UserID: user.ID.String()}, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
