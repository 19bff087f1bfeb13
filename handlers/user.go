package handlers

import (
	"errors"
	"net/http"

	"hormelys/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var userService user.Service

// SetUserService injects the user service used by the package-level handlers.
func SetUserService(svc user.Service) {
	userService = svc
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserHandler creates a back-office account.
// POST /api/users/register
func RegisterUserHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		}
		getLogger(c).Error("registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully", "token": token})
}

// AuthenticateUserHandler signs a back-office user in.
// POST /api/users/login
func AuthenticateUserHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		getLogger(c).Error("authentication failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
