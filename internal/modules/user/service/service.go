package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/user/dto"
	"kitapantaups.id/api/internal/modules/user/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/storage"
	"kitapantaups.id/api/pkg/token"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, input dto.RefreshInput) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*entity.User, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	users       repository.UserRepository
	sessions    repository.SessionRepository
	tokens      *token.Manager
	fileStorage storage.FileStorage
	now         func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, tokens *token.Manager, fileStorage storage.FileStorage) AuthService {
	return &authService{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		fileStorage: fileStorage,
		now:         time.Now,
	}
}

var errInvalidCredentials = apperror.Unauthorized("Email atau password salah")

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	access, _, err := s.tokens.IssueAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, refreshExpiresAt, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, &entity.Session{
		UserID:       user.ID,
		RefreshToken: refresh,
		ExpiresAt:    refreshExpiresAt,
	}); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         user,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.RefreshResponse, error) {
	if input.RefreshToken == "" {
		return nil, apperror.BadRequest("Refresh token diperlukan")
	}

	userID, err := s.tokens.ParseRefresh(input.RefreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Refresh token tidak valid")
	}

	session, err := s.sessions.FindValid(ctx, input.RefreshToken, s.now())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Session tidak ditemukan atau kadaluarsa")
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperror.Unauthorized("Refresh token tidak valid")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, apperror.Unauthorized("User tidak ditemukan")
	}

	access, _, err := s.tokens.IssueAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*entity.User, error) {
	updates := map[string]any{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if len(updates) == 0 {
		return nil, apperror.BadRequest("Tidak ada field yang diupdate")
	}

	return s.users.Update(ctx, userID, updates)
}

// UploadPhoto stores a new profile photo and removes the previous one when it
// lived in the same uploads tree.
func (s *authService) UploadPhoto(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	ext, err := storage.ResolveExtension(file.Filename, storage.PhotoExtensions)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", apperror.New(http.StatusBadRequest, "File tidak dapat dibaca", fmt.Errorf("%w: %v", apperror.ErrBadRequest, err))
	}
	defer src.Close()

	stored, err := s.fileStorage.Save(ctx, storage.ProfileFolder(user.ID.String()), storage.StoredFileName("profile", ext), src)
	if err != nil {
		return "", err
	}

	if _, err := s.users.Update(ctx, user.ID, map[string]any{"photo_url": stored.URL}); err != nil {
		if result := s.fileStorage.Delete(stored.URL); !result.OK() {
			log.Printf("⚠️ failed to remove unsaved photo %s: %v", stored.RelPath, result.Err)
		}
		return "", err
	}

	if user.PhotoURL != nil && *user.PhotoURL != "" {
		if result := s.fileStorage.Delete(*user.PhotoURL); !result.OK() {
			log.Printf("⚠️ failed to remove previous photo of %s: %v", user.ID, result.Err)
		}
	}

	return stored.URL, nil
}

func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
