package models

import (
	"time"
)

const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

type User struct {
	UserID                 string    `json:"id" db:"user_id"`
	Email                  string    `json:"email" db:"email"`
	Username               string    `json:"username" db:"username"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	FirstName              *string   `json:"firstName,omitempty" db:"first_name"`
	LastName               *string   `json:"lastName,omitempty" db:"last_name"`
	Avatar                 *string   `json:"avatar,omitempty" db:"avatar"`
	Role                   string    `json:"role" db:"role"`
	IsActive               bool      `json:"isActive" db:"is_active"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the public author card embedded in posts, comments and reviews.
type UserSummary struct {
	UserID    string  `json:"id" db:"user_id"`
	Username  string  `json:"username" db:"username"`
	FirstName *string `json:"firstName,omitempty" db:"first_name"`
	LastName  *string `json:"lastName,omitempty" db:"last_name"`
	Avatar    *string `json:"avatar,omitempty" db:"avatar"`
}

type Tag struct {
	TagID string  `json:"id" db:"tag_id"`
	Name  string  `json:"name" db:"name"`
	Color *string `json:"color,omitempty" db:"color"`
}

type PostCounts struct {
	Comments int `json:"comments" db:"comments"`
	Likes    int `json:"likes" db:"likes"`
}

type Post struct {
	PostID    string      `json:"id" db:"post_id"`
	AuthorID  string      `json:"authorId" db:"author_id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	Published bool        `json:"published" db:"published"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
	Author    UserSummary `json:"author" db:"author"`
	Count     PostCounts  `json:"_count" db:"count"`
	Tags      []Tag       `json:"tags" db:"-"`
	Comments  []Comment   `json:"comments,omitempty" db:"-"`
}

type Comment struct {
	CommentID string      `json:"id" db:"comment_id"`
	PostID    string      `json:"postId" db:"post_id"`
	AuthorID  string      `json:"authorId" db:"author_id"`
	Content   string      `json:"content" db:"content"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
	Author    UserSummary `json:"author" db:"author"`
}

type Like struct {
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Review struct {
	ReviewID   string      `json:"id" db:"review_id"`
	AuthorID   string      `json:"authorId" db:"author_id"`
	Rating     int         `json:"rating" db:"rating"`
	Content    string      `json:"content" db:"content"`
	IsApproved bool        `json:"isApproved" db:"is_approved"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
	Author     UserSummary `json:"author" db:"author"`
}

type Lead struct {
	Name               string `json:"name" validate:"required,min=1,max=100"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Phone              string `json:"phone" validate:"omitempty,max=40"`
	ProjectDescription string `json:"projectDescription" validate:"required,min=1,max=5000"`
}

type ContactMessage struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Message     string `json:"message" validate:"required,min=1,max=5000"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	Company     string `json:"company" validate:"omitempty,max=200"`
	ProjectType string `json:"projectType" validate:"omitempty,max=100"`
	Budget      string `json:"budget" validate:"omitempty,max=100"`
	Timeline    string `json:"timeline" validate:"omitempty,max=100"`
}
