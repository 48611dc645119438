package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/qr-attendance-api/internal/models"
)

// UserRepository provides access to registered users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByStudentIDOrEmail(ctx context.Context, studentID, email string) (models.User, error)
	GetByStudentID(ctx context.Context, studentID string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	DeleteByStudentID(ctx context.Context, studentID string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByStudentIDOrEmail(ctx context.Context, studentID, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("student_id = ? OR email = ?", studentID, email).
		Take(&user).Error
	if err != nil {
		return models.User{}, translateGormError(err)
	}
	return user, nil
}

func (r *userRepository) GetByStudentID(ctx context.Context, studentID string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Take(&user).Error; err != nil {
		return models.User{}, translateGormError(err)
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateGormError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) DeleteByStudentID(ctx context.Context, studentID string) error {
	result := r.db.WithContext(ctx).Where("student_id = ?", studentID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
