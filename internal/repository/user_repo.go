package repository

import (
	"go-stock-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAdmins(page Page) ([]model.User, int64, error)
	FindAdminByID(tx *gorm.DB, id uuid.UUID) (*model.User, error)
	CountSuperAdmins(tx *gorm.DB) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAdmins(page Page) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	q := r.db.Model(&model.User{}).
		Where("role IN ?", []model.Role{model.RoleAdmin, model.RoleSuperAdmin})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Limit(page.Limit()).Offset(page.Offset()).
		Find(&users).Error
	return users, total, err
}

// FindAdminByID loads an admin-level account. It accepts the ambient tx so
// the delete guard can run against a consistent snapshot.
func (r *userRepo) FindAdminByID(tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := tx.Where("role IN ?", []model.Role{model.RoleAdmin, model.RoleSuperAdmin}).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountSuperAdmins locks the super_admin rows while counting them so two
// concurrent deletes cannot both pass the last-super-admin check.
func (r *userRepo) CountSuperAdmins(tx *gorm.DB) (int64, error) {
	q := tx.Model(&model.User{}).Where("role = ?", model.RoleSuperAdmin)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ids []uuid.UUID
	if err := q.Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
