package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"budgetplanner/internal/entity"
	apperrors "budgetplanner/internal/errors"
	"budgetplanner/internal/pagination"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user
func (s *userService) CreateUser(in UserInput) (*entity.User, error) {
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" || in.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "login and password are required")
	}

	taken, err := s.loginTaken(login, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateLogin
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &entity.User{
		Name:         in.Name,
		Surname:      in.Surname,
		Login:        login,
		PasswordHash: string(hashedPassword),
		Age:          in.Age,
		RoleID:       entity.DefaultRoleID,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

func (s *userService) loginTaken(login string, exceptID int64) (bool, error) {
	var count int64
	q := s.db.Model(&entity.User{}).Where("login = ?", login)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// ListUsers returns one page of users ordered by ID.
func (s *userService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[entity.User], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&entity.User{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []entity.User
	if err := base.Order("id").Scopes(pagination.Paginate(page)).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, int(totalItems))
	return &result, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id int64) (*entity.User, error) {
	var user entity.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByLogin retrieves a user by login
func (s *userService) GetUserByLogin(login string) (*entity.User, error) {
	var user entity.User
	if err := s.db.Where("login = ?", strings.ToLower(strings.TrimSpace(login))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// UpdateUser replaces a user's profile fields.
func (s *userService) UpdateUser(id int64, in UserInput) (*entity.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "login is required")
	}
	taken, err := s.loginTaken(login, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrDuplicateLogin
	}

	updates := map[string]interface{}{
		"name":    in.Name,
		"surname": in.Surname,
		"login":   login,
		"age":     in.Age,
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password_hash"] = string(hashed)
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetUserByID(id)
}

// DeleteUser soft-deletes a user.
func (s *userService) DeleteUser(id int64) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(user).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// VerifyPassword checks if the provided password matches the stored hash
func (s *userService) VerifyPassword(user *entity.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// AttemptLogin returns the user when login and password match. Unknown logins
// and wrong passwords fail the same way.
func (s *userService) AttemptLogin(login, password string) (*entity.User, error) {
	user, err := s.GetUserByLogin(login)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
