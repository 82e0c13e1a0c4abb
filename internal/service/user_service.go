package service

import (
	"context"
	"errors"
	"log"

	"studiosite/internal/models"
	"studiosite/internal/repository"
	"studiosite/internal/storage"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, userID string, data []byte) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

// NewUserService accepts a nil storage; avatar uploads then fail with ErrStorageUnavailable.
func NewUserService(userRepo repository.UserRepository, storage storage.Storage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if _, err := s.userRepo.VerifyPasswordByID(ctx, userID, currentPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIncorrectPassword
		}
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, newPassword)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, data []byte) (*models.User, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.storage.UploadAvatar(ctx, userID, data)
	if err != nil {
		return nil, err
	}

	previous := user.Avatar
	user.Avatar = &avatarURL

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if delErr := s.storage.DeleteAvatar(ctx, userID, avatarURL); delErr != nil {
			log.Printf("Warning: failed to remove orphaned avatar %s: %v", avatarURL, delErr)
		}
		return nil, err
	}

	if previous != nil {
		if err := s.storage.DeleteAvatar(ctx, userID, *previous); err != nil {
			log.Printf("Warning: failed to remove previous avatar %s: %v", *previous, err)
		}
	}

	return user, nil
}
