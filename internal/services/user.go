package services

import (
	"context"
	"time"

	"github.com/mwhitfield/pocketbook-backend/internal/dto"
	"github.com/mwhitfield/pocketbook-backend/internal/models"
	"github.com/mwhitfield/pocketbook-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	Store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store: store,
	}
}

// Register creates the profile document for a verified identity. The
// credential side (passwords, Google sign-in) lives entirely in Firebase;
// this only records the display profile, including the photo URL that
// Google sign-ins carry.
func (s *userService) Register(ctx context.Context, uid string, req dto.RegisterUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)

	now := time.Now()
	user := &models.User{
		UID:       uid,
		Email:     req.Email,
		Name:      req.Name,
		PhotoURL:  req.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		return nil, err
	}

	log.Info("user registered", "name", req.Name)
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	user.UpdatedAt = time.Now()

	if err := s.Store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
