package handlers

import (
	"net/http"

	"github.com/CareLoop-AI/CareLoopAI/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Validation Error", err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, "Validation Error", err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		respondError(c, "Internal Server Error",
			"An unexpected error occurred. Please try again later.", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, services.LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "Validation Error", err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, "Unauthorized", err.Error(), http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondError(c, "Unauthorized", "User not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.GetUserByID(userID.(uint))
	if err != nil {
		respondError(c, "Not Found", "User not found", http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, user)
}
