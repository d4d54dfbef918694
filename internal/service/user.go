package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"islandfeed/internal/model"
	"islandfeed/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo       repository.UserRepository
	followRepo repository.FollowRepository
}

func NewUserService(repo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		repo:       repo,
		followRepo: followRepo,
	}
}

// Signup creates a new account. Passwords are stored as bcrypt hashes only.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("username is required")
	}

	if strings.TrimSpace(req.Password) == "" {
		return nil, fmt.Errorf("password is required")
	}

	// Check if username already exists
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.DefaultRole
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DOB:          req.DOB,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Followers = []string{}
	user.Following = []string{}
	return user, nil
}

// Login authenticates a user with username and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Don't reveal whether the username exists or not
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByUsername retrieves a user with their follower and following lists.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.attachFollowLists(ctx, user)
}

// UpdateProfile applies the mutable profile fields and returns the result.
func (s *UserService) UpdateProfile(ctx context.Context, username string, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.UpdateProfile(ctx, username, req)
	if err != nil {
		return nil, err
	}

	return s.attachFollowLists(ctx, user)
}

// Search finds users matching the query, case-insensitively, capped at
// model.SearchResultLimit. Credential material is never serialized.
func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	users, err := s.repo.Search(ctx, query, model.SearchResultLimit)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	for i := range users {
		users[i].Followers = []string{}
		users[i].Following = []string{}
	}
	return users, nil
}

// attachFollowLists loads both sides of the follow relation for a user.
func (s *UserService) attachFollowLists(ctx context.Context, user *model.User) (*model.User, error) {
	followers, err := s.followRepo.Followers(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.Following(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	user.Followers = followers
	user.Following = following
	return user, nil
}
