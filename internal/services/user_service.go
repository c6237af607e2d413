package services

import (
	"database/sql"
	"fmt"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Signup(email, password string, role models.Role) (models.User, error)
	Login(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUserRole(id string, role models.Role) (models.User, error)
	Stats() (models.AdminStats, error)
}

// UserService provides business logic for accounts and authentication.
type UserService struct {
	db       *sql.DB
	notifier NotificationServiceProvider
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, notifier NotificationServiceProvider) *UserService {
	return &UserService{db: db, notifier: notifier}
}

// Signup creates a new account with a bcrypt-hashed password. The email
// existence check is best effort; the UNIQUE constraint on users.email
// decides races, and its violation surfaces as ErrAlreadyExists too.
func (s *UserService) Signup(email, password string, role models.Role) (models.User, error) {
	if _, err := s.GetUserByEmail(email); err == nil {
		return models.User{}, ErrAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, email, password_hash, role) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Email, user.PasswordHash, user.Role); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrAlreadyExists
		}
		return models.User{}, err
	}

	return s.GetUserByID(user.ID)
}

// Login verifies a user's credentials. An unknown email and a wrong
// password are deliberately indistinguishable to the caller.
func (s *UserService) Login(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, role, created_at FROM users WHERE id = ?", id)
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?", email)
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// ListUsers retrieves all user accounts.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, email, role, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUserRole changes a user's role and notifies them.
func (s *UserService) UpdateUserRole(id string, role models.Role) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if _, err := s.db.Exec("UPDATE users SET role = ? WHERE id = ?", role, id); err != nil {
		return models.User{}, err
	}

	if user.Role != role {
		s.notifier.Notify(user.ID, models.NotificationRoleChanged,
			fmt.Sprintf("Your account role is now %s.", role), nil)
	}
	return s.GetUserByID(id)
}

// Stats returns entity counts for the admin dashboard.
func (s *UserService) Stats() (models.AdminStats, error) {
	var stats models.AdminStats
	queries := []struct {
		dst   *int
		query string
	}{
		{&stats.Users, "SELECT COUNT(*) FROM users"},
		{&stats.Admins, "SELECT COUNT(*) FROM users WHERE role = 'ADMIN'"},
		{&stats.Organizers, "SELECT COUNT(*) FROM users WHERE role = 'ORGANIZER'"},
		{&stats.Events, "SELECT COUNT(*) FROM events"},
		{&stats.UpcomingEvents, "SELECT COUNT(*) FROM events WHERE starts_at > CURRENT_TIMESTAMP"},
		{&stats.RSVPs, "SELECT COUNT(*) FROM rsvps"},
		{&stats.Notifications, "SELECT COUNT(*) FROM notifications"},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dst); err != nil {
			return models.AdminStats{}, err
		}
	}
	return stats, nil
}
