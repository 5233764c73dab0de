package services

import (
	"medtrain/apierror"
	"medtrain/config"
	"medtrain/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles profile reads and mutations.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UpdateProfileInput carries a partial profile update; nil fields are
// untouched. Role is applied only for admin principals; id, email and
// password are never updatable through this path.
type UpdateProfileInput struct {
	Name            *string
	Specialization  *string
	ExperienceYears *int
	Role            *string
}

// GetUserByID returns one user or 404. Passwords are stripped by the
// model's JSON encoding.
func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apierror.NotFound("User not found")
	}
	return &user, nil
}

// GetAllUsers lists users, optionally filtered by role, newest first.
func (s *UserService) GetAllUsers(limit, page int, role string) ([]models.User, error) {
	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies a profile update for the given user.
func (s *UserService) UpdateUser(userID uint, input UpdateProfileInput, isAdmin bool) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apierror.NotFound("User not found")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Specialization != nil {
		user.Specialization = *input.Specialization
	}
	if input.ExperienceYears != nil {
		user.ExperienceYears = *input.ExperienceYears
	}
	if input.Role != nil && isAdmin {
		user.Role = *input.Role
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, apierror.BadRequest("Failed to update user")
	}
	return &user, nil
}

// DeleteUser removes the user together with their solution ledger entries
// and solve history in one transaction, so no orphaned solutions reference
// a deleted user.
func (s *UserService) DeleteUser(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return apierror.NotFound("User not found")
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Solution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.SolvedTask{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
}

// ChangePassword verifies the current password and stores a new hash.
// Reusing the current password is rejected.
func (s *UserService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return apierror.NotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apierror.BadRequest("Current password is incorrect")
	}
	if currentPassword == newPassword {
		return apierror.BadRequest("New password must differ from the current one")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), config.AppConfig.SaltRound)
	if err != nil {
		return apierror.Internal("Failed to process password")
	}

	return s.db.Model(&user).Update("password", string(hashedPassword)).Error
}
