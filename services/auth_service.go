package services

import (
	"errors"

	"medtrain/apierror"
	"medtrain/config"
	"medtrain/middleware"
	"medtrain/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration and login.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates an account. The role is always forced to "user";
// admins are promoted out of band.
func (s *AuthService) Register(email, password, name, specialization string, experienceYears int) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apierror.BadRequest("User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return nil, apierror.Internal("Failed to process password")
	}

	user := models.User{
		Email:           email,
		Password:        string(hashedPassword),
		Name:            name,
		Specialization:  specialization,
		ExperienceYears: experienceYears,
		Role:            models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apierror.BadRequest("Failed to register user")
	}
	return &user, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same message to avoid user enumeration.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", apierror.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apierror.Unauthorized("Invalid email or password")
	}

	token, err := middleware.GenerateJWT(&user)
	if err != nil {
		return "", apierror.Internal("Failed to generate token")
	}
	return token, nil
}
