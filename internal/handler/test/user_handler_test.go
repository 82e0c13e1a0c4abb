package test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"studiosite/internal/models"
	"studiosite/internal/repository"
	"studiosite/internal/service"
	"studiosite/internal/storage"
)

func TestGetCurrentUserHandler(t *testing.T) {
	t.Run("requires identity", func(t *testing.T) {
		th := newTestHandler()

		rr := serve(th.GetCurrentUser, newRequest(http.MethodGet, "/api/auth/me", nil))

		assertError(t, rr, http.StatusUnauthorized, "Access token required")
	})

	t.Run("returns profile", func(t *testing.T) {
		th := newTestHandler()
		th.users.On("GetProfile", mock.Anything, "user-1").Return(&models.User{UserID: "user-1", Username: "abc"}, nil)

		rr := serve(th.GetCurrentUser, newRequest(http.MethodGet, "/api/auth/me", nil, withIdentity(ownerIdentity)))

		resp := decodeEnvelope(t, rr, http.StatusOK)
		var data struct {
			User models.User `json:"user"`
		}
		decodeData(t, resp, &data)
		assert.Equal(t, "abc", data.User.Username)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		th := newTestHandler()
		th.users.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(req repository.UpdateProfileRequest) bool {
			return req.UserID == "user-1" && *req.FirstName == "Ada" && req.LastName == nil && req.Avatar == nil
		})).Return(&models.User{UserID: "user-1"}, nil)

		rr := serve(th.UpdateProfile, newRequest(http.MethodPut, "/api/auth/me", map[string]string{"firstName": "Ada"}, withIdentity(ownerIdentity)))

		resp := decodeEnvelope(t, rr, http.StatusOK)
		assert.Equal(t, "Profile updated successfully", resp.Message)
		th.users.AssertExpectations(t)
	})

	t.Run("avatar must be a url", func(t *testing.T) {
		th := newTestHandler()

		rr := serve(th.UpdateProfile, newRequest(http.MethodPut, "/api/auth/me", map[string]string{"avatar": "not a url"}, withIdentity(ownerIdentity)))

		assertError(t, rr, http.StatusBadRequest, "Validation Error")
	})
}

func TestChangePasswordHandler(t *testing.T) {
	th := newTestHandler()
	th.users.On("ChangePassword", mock.Anything, "user-1", "wrong", "newsecret").Return(service.ErrIncorrectPassword)
	th.users.On("ChangePassword", mock.Anything, "user-1", "secret1", "newsecret").Return(nil)

	rr := serve(th.ChangePassword, newRequest(http.MethodPut, "/api/auth/change-password", map[string]string{
		"currentPassword": "wrong",
		"newPassword":     "newsecret",
	}, withIdentity(ownerIdentity)))
	assertError(t, rr, http.StatusBadRequest, "Current password is incorrect")

	rr = serve(th.ChangePassword, newRequest(http.MethodPut, "/api/auth/change-password", map[string]string{
		"currentPassword": "secret1",
		"newPassword":     "newsecret",
	}, withIdentity(ownerIdentity)))
	resp := decodeEnvelope(t, rr, http.StatusOK)
	assert.Equal(t, "Password changed successfully", resp.Message)
}

func newAvatarRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/auth/me/avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return withIdentity(ownerIdentity)(req)
}

func TestUpdateAvatarHandler(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	tests := []struct {
		name          string
		field         string
		content       []byte
		serviceErr    error
		expectedCode  int
		expectedError string
	}{
		{name: "success", field: "avatar", content: png, expectedCode: http.StatusOK},
		{name: "missing field", field: "photo", content: png, expectedCode: http.StatusBadRequest, expectedError: "Avatar file is required"},
		{name: "too large", field: "avatar", content: bytes.Repeat([]byte("a"), 1025), expectedCode: http.StatusRequestEntityTooLarge, expectedError: "File too large, maximum size is 1024 bytes"},
		{name: "unsupported type", field: "avatar", content: []byte("plain text"), serviceErr: fmt.Errorf("detect: %w", storage.ErrUnsupportedType), expectedCode: http.StatusBadRequest, expectedError: "Unsupported file type. Allowed: JPEG, PNG, GIF, WebP"},
		{name: "storage disabled", field: "avatar", content: png, serviceErr: service.ErrStorageUnavailable, expectedCode: http.StatusServiceUnavailable, expectedError: "File storage is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler()
			if tt.serviceErr != nil {
				th.users.On("UpdateAvatar", mock.Anything, "user-1", tt.content).Return(nil, tt.serviceErr)
			} else {
				th.users.On("UpdateAvatar", mock.Anything, "user-1", tt.content).Return(&models.User{UserID: "user-1"}, nil)
			}

			rr := serve(th.UpdateAvatar, newAvatarRequest(t, tt.field, tt.content))

			if tt.expectedError != "" {
				assertError(t, rr, tt.expectedCode, tt.expectedError)
				return
			}
			resp := decodeEnvelope(t, rr, tt.expectedCode)
			assert.Equal(t, "Avatar updated successfully", resp.Message)
		})
	}
}
