package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodmate-server/internal/domain"
	"foodmate-server/internal/dto"
	"foodmate-server/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*domain.User, error)
	GetAll(ctx context.Context, session *domain.Session) ([]*domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsChef(ctx context.Context, email string) (bool, error)
	RequestRole(ctx context.Context, session *domain.Session, role string) (int64, error)
	ApproveRole(ctx context.Context, session *domain.Session, userID, role string) (int64, error)
	GetProfile(ctx context.Context, session *domain.Session, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, session *domain.Session, email string, req *dto.UpdateProfileRequest) (int64, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterUserRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: missing email", domain.ErrInvalid)
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Photo:     req.Photo,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	return user, nil
}

func (s *userServiceImpl) GetAll(ctx context.Context, session *domain.Session) ([]*domain.User, error) {
	if !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.userRepo.FindAll(ctx)
}

func (s *userServiceImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, domain.RoleAdmin)
}

func (s *userServiceImpl) IsChef(ctx context.Context, email string) (bool, error) {
	return s.hasRole(ctx, email, domain.RoleChef)
}

func (s *userServiceImpl) hasRole(ctx context.Context, email, role string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(mapNotFound(err), domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == role, nil
}

func (s *userServiceImpl) RequestRole(ctx context.Context, session *domain.Session, role string) (int64, error) {
	if role != domain.RoleChef && role != domain.RoleAdmin {
		return 0, fmt.Errorf("%w: cannot request role %q", domain.ErrInvalid, role)
	}

	return s.userRepo.UpdateByEmail(ctx, session.Email, map[string]interface{}{
		"status":         domain.StatusRequested,
		"requested_role": role,
		"updated_at":     time.Now(),
	})
}

// ApproveRole resolves a pending role request: the admin either grants the
// requested role or resets the user back to plain "user".
func (s *userServiceImpl) ApproveRole(ctx context.Context, session *domain.Session, userID, role string) (int64, error) {
	if !session.IsAdmin() {
		return 0, domain.ErrForbidden
	}
	if role != domain.RoleUser && role != domain.RoleChef && role != domain.RoleAdmin {
		return 0, fmt.Errorf("%w: unknown role %q", domain.ErrInvalid, role)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return 0, mapNotFound(err)
	}

	return s.userRepo.Update(ctx, userID, map[string]interface{}{
		"role":           role,
		"status":         "",
		"requested_role": "",
		"updated_at":     time.Now(),
	})
}

func (s *userServiceImpl) GetProfile(ctx context.Context, session *domain.Session, email string) (*domain.User, error) {
	if session.Email != email && !session.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, session *domain.Session, email string, req *dto.UpdateProfileRequest) (int64, error) {
	if session.Email != email {
		return 0, domain.ErrForbidden
	}

	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Photo != nil {
		fields["photo"] = *req.Photo
	}

	return s.userRepo.UpdateByEmail(ctx, email, fields)
}
