package service

import (
	"time"

	"go-stock-api/internal/apperr"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService manages accounts with role admin or super_admin. It is the
// only component allowed to mutate or delete admin-level rows, and it
// guarantees at least one super_admin survives every delete.
type AdminService interface {
	ListAdmins(page repository.Page) ([]model.UserResponse, int64, error)
	GetAdmin(id uuid.UUID) (*model.UserResponse, error)
	CreateAdmin(identity model.Identity, req *CreateAdminRequest) (*model.User, error)
	UpdateAdmin(identity model.Identity, id uuid.UUID, req *UpdateAdminRequest) (*model.User, error)
	DeleteAdmin(identity model.Identity, id uuid.UUID) error
}

type CreateAdminRequest struct {
	FullName  string     `json:"full_name" validate:"required,max=255"`
	FirstName string     `json:"first_name" validate:"required,max=255"`
	LastName  string     `json:"last_name" validate:"required,max=255"`
	Email     string     `json:"email" validate:"required,email,max=255"`
	BirthDate string     `json:"birth_date" validate:"required"` // YYYY-MM-DD
	Gender    string     `json:"gender" validate:"required,oneof=male female"`
	Password  string     `json:"password" validate:"required,min=6"`
	Role      model.Role `json:"role" validate:"required,oneof=admin super_admin"`
}

type UpdateAdminRequest struct {
	FullName  string     `json:"full_name" validate:"required,max=255"`
	FirstName string     `json:"first_name" validate:"required,max=255"`
	LastName  string     `json:"last_name" validate:"required,max=255"`
	Email     string     `json:"email" validate:"required,email,max=255"`
	BirthDate string     `json:"birth_date" validate:"required"`
	Gender    string     `json:"gender" validate:"required,oneof=male female"`
	Password  *string    `json:"password,omitempty" validate:"omitempty,min=6"` // Optional
	Role      model.Role `json:"role" validate:"required,oneof=admin super_admin"`
}

type adminService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewAdminService(userRepo repository.UserRepository, db *gorm.DB) AdminService {
	return &adminService{userRepo: userRepo, db: db}
}

func (s *adminService) ListAdmins(page repository.Page) ([]model.UserResponse, int64, error) {
	admins, total, err := s.userRepo.FindAdmins(page)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.UserResponse, len(admins))
	for i, admin := range admins {
		responses[i] = admin.ToResponse()
	}
	return responses, total, nil
}

func (s *adminService) GetAdmin(id uuid.UUID) (*model.UserResponse, error) {
	admin, err := s.userRepo.FindAdminByID(s.db, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "admin not found")
	}
	response := admin.ToResponse()
	return &response, nil
}

func (s *adminService) CreateAdmin(identity model.Identity, req *CreateAdminRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Email uniqueness is enforced across the whole user table, not just
	// admin-level rows.
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already exists")
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		FullName:  req.FullName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Role:      req.Role,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, apperr.New(apperr.KindInternal, "failed to hash password")
	}

	if err := s.userRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) UpdateAdmin(identity model.Identity, id uuid.UUID, req *UpdateAdminRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	admin, err := s.userRepo.FindAdminByID(s.db, id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, "admin not found")
	}

	if req.Email != admin.Email {
		if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
			return nil, apperr.New(apperr.KindConflict, "email already exists")
		}
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	// Demoting the last super_admin is as fatal as deleting it.
	if admin.Role == model.RoleSuperAdmin && req.Role != model.RoleSuperAdmin {
		count, err := s.userRepo.CountSuperAdmins(s.db)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, apperr.New(apperr.KindConflict, "cannot demote the last super admin")
		}
	}

	admin.FullName = req.FullName
	admin.FirstName = req.FirstName
	admin.LastName = req.LastName
	admin.Email = req.Email
	admin.BirthDate = birthDate
	admin.Gender = req.Gender
	admin.Role = req.Role

	if req.Password != nil && *req.Password != "" {
		if err := admin.SetPassword(*req.Password); err != nil {
			return nil, apperr.New(apperr.KindInternal, "failed to hash password")
		}
	}

	if err := s.userRepo.Update(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteAdmin removes an admin-level account. The last-super-admin check
// and the delete run in one transaction with the super_admin rows locked,
// so two concurrent deletes cannot both slip past the count.
func (s *adminService) DeleteAdmin(identity model.Identity, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		admin, err := s.userRepo.FindAdminByID(tx, id)
		if err != nil {
			return apperr.New(apperr.KindNotFound, "admin not found")
		}

		if admin.Role == model.RoleSuperAdmin {
			count, err := s.userRepo.CountSuperAdmins(tx)
			if err != nil {
				return err
			}
			if count <= 1 {
				return apperr.New(apperr.KindConflict, "cannot delete the last super admin")
			}
		}

		return s.userRepo.Delete(tx, id)
	})
}

func parseBirthDate(value string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "invalid birth_date format, use YYYY-MM-DD")
	}
	return &parsed, nil
}
