package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/lib/validation"
	"filmorate/proj/internal/storage"
)

type Storage interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int) error
	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	Friends(ctx context.Context, userID int) ([]models.User, error)
	CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error)
}

type UserService struct {
	log     *slog.Logger
	storage Storage
}

func New(log *slog.Logger, storage Storage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	const op = "users.UserService.List"
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "users.UserService.GetUser"
	log := s.log.With("op", op, "id", id)
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, fmt.Errorf("%w with id = %d", ErrUserNotFound, id)
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op)
	if err := s.validateUser(user); err != nil {
		return nil, err
	}
	created, err := s.storage.InsertUser(ctx, user)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	log.Info("user created", "id", created.ID, "login", created.Login)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op)
	if err := s.validateUser(user); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, user.ID); err != nil {
		return nil, err
	}
	updated, err := s.storage.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w with id = %d", ErrUserNotFound, user.ID)
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "id", id)
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteUser(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error(err.Error())
		return err
	}
	return nil
}

// AddFriend records the directional edge userID -> friendID only; the
// reverse edge requires its own call. Both endpoints must exist,
// checked in argument order.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int) error {
	const op = "users.UserService.AddFriend"
	log := s.log.With("op", op, "user_id", userID, "friend_id", friendID)
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetUser(ctx, friendID); err != nil {
		return err
	}
	if err := s.storage.AddFriend(ctx, userID, friendID); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int) error {
	const op = "users.UserService.RemoveFriend"
	log := s.log.With("op", op, "user_id", userID, "friend_id", friendID)
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetUser(ctx, friendID); err != nil {
		return err
	}
	if err := s.storage.RemoveFriend(ctx, userID, friendID); err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func (s *UserService) Friends(ctx context.Context, userID int) ([]models.User, error) {
	const op = "users.UserService.Friends"
	log := s.log.With("op", op, "user_id", userID)
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.storage.Friends(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return friends, nil
}

func (s *UserService) CommonFriends(ctx context.Context, userID, otherID int) ([]models.User, error) {
	const op = "users.UserService.CommonFriends"
	log := s.log.With("op", op, "user_id", userID, "other_id", otherID)
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, otherID); err != nil {
		return nil, err
	}
	common, err := s.storage.CommonFriends(ctx, userID, otherID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return common, nil
}

// validateUser applies the mutation contract in order. A blank display
// name is not a failure: it silently falls back to the login.
func (s *UserService) validateUser(user *models.User) error {
	if user == nil {
		return validation.NewError("user", "user cannot be null")
	}
	if validation.IsBlank(user.Email) {
		return validation.NewError("email", "email cannot be blank")
	}
	if !strings.Contains(user.Email, "@") {
		return validation.NewError("email", "email must contain the @ character")
	}
	if validation.IsBlank(user.Login) {
		return validation.NewError("login", "login cannot be blank")
	}
	if validation.ContainsWhitespace(user.Login) {
		return validation.NewError("login", "login cannot contain whitespace")
	}
	if validation.IsBlank(user.Name) {
		user.Name = user.Login
	}
	if user.Birthday.IsZero() {
		return validation.NewError("birthday", "birthday cannot be null")
	}
	if user.Birthday.After(fields.Date{Time: time.Now()}) {
		return validation.NewError("birthday", "birthday cannot be in the future")
	}
	return nil
}
