package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"studiosite/internal/models"
)

// PasswordCost is the bcrypt work factor for stored credentials.
var PasswordCost = 12

const userColumns = `user_id, email, username, password_hash, first_name, last_name, avatar,
	role, is_active, refresh_token, refresh_token_expiry_time, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type UpdateProfileRequest struct {
	UserID    string  `json:"userId"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	query := `
		INSERT INTO users (user_id, email, username, password_hash, first_name, last_name, avatar,
			role, is_active, refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (:user_id, :email, :username, :password_hash, :first_name, :last_name, :avatar,
			:role, :is_active, :refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	return wrapError("failed to create user", err)
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		return nil, wrapError(fmt.Sprintf("failed to get user %s", userID), err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, wrapError("failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) OR username = $2)`

	if err := r.db.GetContext(ctx, &exists, query, email, username); err != nil {
		return false, wrapError("failed to check user existence", err)
	}

	return exists, nil
}

// VerifyPassword returns ErrNotFound both for an unknown email and for a wrong password.
func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("password mismatch: %w", ErrNotFound)
	}

	return user, nil
}

func (r *userRepository) VerifyPasswordByID(ctx context.Context, userID, password string) (*models.User, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("password mismatch: %w", ErrNotFound)
	}

	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, avatar = :avatar, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return wrapError("failed to update user", err)
	}

	return checkAffected("failed to update user", result)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), time.Now(), userID)
	if err != nil {
		return wrapError("failed to update password", err)
	}

	return checkAffected("failed to update password", result)
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return wrapError("failed to update refresh token", err)
	}

	return checkAffected("failed to update refresh token", result)
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE refresh_token = $1
		AND refresh_token <> ''
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	if err := r.db.GetContext(ctx, &user, query, refreshToken); err != nil {
		return nil, wrapError("failed to get user by refresh token", err)
	}

	return &user, nil
}
