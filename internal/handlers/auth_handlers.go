package handlers

import (
	"errors"
	"net/http"

	"dulceria_pos_backend/internal/middleware"
	"dulceria_pos_backend/internal/models"
	"dulceria_pos_backend/internal/services"
	"dulceria_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register handles the creation of a new employee account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegistrationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Register: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	employee, err := h.authService.RegisterEmployee(req)
	if err != nil {
		utils.LogError(err, "Register: Error from authService.RegisterEmployee")
		if errors.Is(err, services.ErrCodeExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Employee code already exists.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to register employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// Login authenticates an employee by code and password and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "Login: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid employee code or password.", ""))
		} else {
			utils.LogError(err, "Login: Error from authService.Login")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the profile of the currently authenticated employee.
func (h *AuthHandler) Me(c *gin.Context) {
	employeeID, ok := middleware.EmployeeID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required.", ""))
		return
	}

	employee, err := h.authService.GetEmployee(employeeID)
	if err != nil {
		utils.LogError(err, "Me: Error from authService.GetEmployee")
		if errors.Is(err, services.ErrEmployeeNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Employee not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch employee.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, employee)
}
