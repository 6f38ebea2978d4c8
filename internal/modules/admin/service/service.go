package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/admin/dto"
	userRepo "kitapantaups.id/api/internal/modules/user/repository"
	"kitapantaups.id/api/pkg/apperror"
)

const bcryptCost = 12

type AdminService interface {
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actorID uuid.UUID, id string) error
}

type adminService struct {
	users userRepo.UserRepository
	cost  int
}

func NewAdminService(users userRepo.UserRepository) AdminService {
	return &adminService{users: users, cost: bcryptCost}
}

func parseUserID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound("User tidak ditemukan")
	}
	return parsed, nil
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	return s.users.List(ctx)
}

func (s *adminService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Role:         input.Role,
		Phone:        input.Phone,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*entity.User, error) {
	userID, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.DisplayName != nil {
		updates["display_name"] = *input.DisplayName
	}
	if input.Role != nil {
		updates["role"] = *input.Role
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.cost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, apperror.BadRequest("Tidak ada field yang diupdate")
	}

	return s.users.Update(ctx, userID, updates)
}

func (s *adminService) DeleteUser(ctx context.Context, actorID uuid.UUID, id string) error {
	userID, err := parseUserID(id)
	if err != nil {
		return err
	}
	if userID == actorID {
		return apperror.BadRequest("Tidak dapat menghapus akun sendiri")
	}
	return s.users.Delete(ctx, userID)
}
