package services

import (
	"database/sql"
	"errors"
	"fmt"

	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/repositories"
	"dulceria_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrInvalidCredentials = errors.New("invalid employee code or password")
	ErrCodeExists         = errors.New("employee code already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// AuthResponse is the successful login payload.
type AuthResponse struct {
	Employee    *models.Employee `json:"employee"`
	AccessToken string           `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterEmployee(req models.RegistrationPayload) (*models.Employee, error)
	Login(req models.Credentials) (*AuthResponse, error)
	GetEmployee(employeeID int64) (*models.Employee, error)
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
	db           *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(employeeRepo repositories.EmployeeRepository, db *sql.DB) AuthService {
	return &authService{employeeRepo: employeeRepo, db: db}
}

// RegisterEmployee creates a new employee with a unique login code. The
// password is stored as a bcrypt hash, never in clear text.
func (s *authService) RegisterEmployee(req models.RegistrationPayload) (*models.Employee, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	employee := models.Employee{
		Name: req.Name,
		Code: req.Code,
	}
	if _, err := s.employeeRepo.Create(s.db, &employee, string(hashedPasswordBytes)); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrCodeExists
		}
		return nil, fmt.Errorf("failed to register employee: %w", err)
	}
	return &employee, nil
}

// Login checks the code/password pair and issues an access token. A mismatch
// is a normal negative result reported as ErrInvalidCredentials, never as an
// internal failure.
func (s *authService) Login(req models.Credentials) (*AuthResponse, error) {
	employee, err := s.employeeRepo.FindByCode(req.Code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(employee.ID, employee.Name, employee.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	employee.PasswordHash = ""
	return &AuthResponse{Employee: employee, AccessToken: accessToken}, nil
}

func (s *authService) GetEmployee(employeeID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve employee: %w", err)
	}
	return employee, nil
}
