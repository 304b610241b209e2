package user

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Traore-oss/SGRH-sub001/internal/domain/user"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/database"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/jwt"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/sanitize"
	"github.com/Traore-oss/SGRH-sub001/internal/pkg/validator"
	"github.com/Traore-oss/SGRH-sub001/internal/service/file"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	file.FileService
}

func NewUserService(tx database.Transactor, userRepository user.UserRepository, fileService file.FileService) user.UserService {
	return &UserServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
		FileService:    fileService,
	}
}

func parseDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*value)
	if !ok {
		return nil
	}
	return &d
}

// canAssignRole reports whether the caller may give or edit an account with role.
// Only an Admin manages Admin accounts.
func canAssignRole(caller jwt.Principal, role user.Role) bool {
	return role != user.RoleAdmin || caller.Role == user.RoleAdmin
}

// ensureAdminRemains fails when target is the last active Admin.
func (s *UserServiceImpl) ensureAdminRemains(ctx context.Context, target user.User) error {
	if target.Role != user.RoleAdmin || !target.Actif {
		return nil
	}
	count, err := s.UserRepository.CountActiveAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to count active admins: %w", err)
	}
	if count <= 1 {
		return user.ErrLastActiveAdmin
	}
	return nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if !canAssignRole(caller, user.Role(req.Role)) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Nom:           strings.TrimSpace(req.Nom),
		Prenom:        strings.TrimSpace(req.Prenom),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hash),
		Role:          user.Role(req.Role),
		Telephone:     strings.TrimSpace(req.Telephone),
		Adresse:       sanitize.Text(req.Adresse),
		Poste:         sanitize.Text(req.Poste),
		DepartementID: req.DepartementID,
		SalaireBase:   req.SalaireBase,
		TypeContrat:   req.TypeContrat,
		DateEmbauche:  parseDate(req.DateEmbauche),
		Actif:         true,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role, "by", caller.UserID)
	return user.ToResponse(created), nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if caller.UserID != id && !caller.Can(user.PermissionEmployeeViewAll) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(u), nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	if err := filter.Validate(); err != nil {
		return user.ListUserResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUserResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}

	return user.ListUserResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Users:      responses,
	}, nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	var updated user.User
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.UserRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !canAssignRole(caller, existing.Role) {
			return user.ErrInsufficientPermissions
		}

		if req.Nom != nil {
			existing.Nom = strings.TrimSpace(*req.Nom)
		}
		if req.Prenom != nil {
			existing.Prenom = strings.TrimSpace(*req.Prenom)
		}
		if req.Email != nil {
			existing.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Role != nil && user.Role(*req.Role) != existing.Role {
			if !canAssignRole(caller, user.Role(*req.Role)) {
				return user.ErrInsufficientPermissions
			}
			if err := s.ensureAdminRemains(txCtx, existing); err != nil {
				return err
			}
			existing.Role = user.Role(*req.Role)
		}
		if req.Telephone != nil {
			existing.Telephone = strings.TrimSpace(*req.Telephone)
		}
		if req.Adresse != nil {
			existing.Adresse = sanitize.Text(*req.Adresse)
		}
		if req.Poste != nil {
			existing.Poste = sanitize.Text(*req.Poste)
		}
		if req.DepartementID != nil {
			if *req.DepartementID == "" {
				existing.DepartementID = nil
			} else {
				existing.DepartementID = req.DepartementID
			}
		}
		if req.SalaireBase != nil {
			existing.SalaireBase = *req.SalaireBase
		}
		if req.TypeContrat != nil {
			existing.TypeContrat = *req.TypeContrat
		}
		if req.DateEmbauche != nil {
			existing.DateEmbauche = parseDate(req.DateEmbauche)
		}

		updated, err = s.UserRepository.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user.ToResponse(updated), nil
}

// DeleteUser implements user.UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.ErrInsufficientPermissions
	}
	if caller.UserID == id {
		return user.ErrCannotDeleteSelf
	}
	if !validator.IsValidUUID(id) {
		return user.ErrUserNotFound
	}

	var photo *string
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.UserRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.ensureAdminRemains(txCtx, target); err != nil {
			return err
		}
		photo = target.Photo
		return s.UserRepository.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if photo != nil {
		if err := s.FileService.DeleteByURL(ctx, *photo); err != nil {
			slog.Warn("failed to remove photo of deleted user", "user_id", id, "error", err)
		}
	}

	slog.Info("user deleted", "user_id", id, "by", caller.UserID)
	return nil
}

// ToggleActive implements user.UserService.
func (s *UserServiceImpl) ToggleActive(ctx context.Context, id string) (user.UserResponse, error) {
	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if caller.UserID == id {
		return user.UserResponse{}, user.ErrCannotDeactivateSelf
	}
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	var toggled user.User
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		target, err := s.UserRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.ensureAdminRemains(txCtx, target); err != nil {
			return err
		}

		if err := s.UserRepository.SetActive(txCtx, id, !target.Actif); err != nil {
			return err
		}
		toggled, err = s.UserRepository.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to toggle user: %w", err)
	}

	slog.Info("user activation toggled", "user_id", id, "actif", toggled.Actif, "by", caller.UserID)
	return user.ToResponse(toggled), nil
}

// UploadPhoto implements user.UserService.
func (s *UserServiceImpl) UploadPhoto(ctx context.Context, req user.UploadPhotoRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	caller, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}
	if caller.UserID != req.UserID && !caller.Can(user.PermissionEmployeeManage) {
		return user.UserResponse{}, user.ErrInsufficientPermissions
	}

	existing, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	key, err := s.FileService.UploadPhoto(ctx, req.UserID, req.File, req.Filename)
	if err != nil {
		return user.UserResponse{}, err
	}
	url := s.FileService.FileURL(key)

	if err := s.UserRepository.UpdatePhoto(ctx, req.UserID, url); err != nil {
		if delErr := s.FileService.DeleteFile(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphan photo", "key", key, "error", delErr)
		}
		return user.UserResponse{}, fmt.Errorf("failed to save photo: %w", err)
	}

	if existing.Photo != nil && *existing.Photo != url {
		if err := s.FileService.DeleteByURL(ctx, *existing.Photo); err != nil {
			slog.Warn("failed to remove previous photo", "user_id", req.UserID, "error", err)
		}
	}

	existing.Photo = &url
	return user.ToResponse(existing), nil
}
