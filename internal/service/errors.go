package service

import "errors"

var (
	ErrUserExists          = errors.New("user with this email or username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("refresh token expired or invalid")
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("current password is incorrect")
	ErrStorageUnavailable  = errors.New("file storage is not configured")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidTag      = errors.New("one or more tags do not exist")
	ErrTagExists       = errors.New("tag already exists")
	ErrLikeConflict    = errors.New("like was changed concurrently")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("you have already submitted a review")
	ErrReviewApproved = errors.New("cannot edit an approved review")

	ErrForbidden = errors.New("forbidden")
)
