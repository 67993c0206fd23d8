package handlers

import (
	"fmt"
	"net/http"

	"FoodOrder/middleware"
	"FoodOrder/services"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"required"`
}

func (r registerRequest) input() services.RegisterInput {
	return services.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Address:  r.Address,
		Password: r.Password,
	}
}

func newAuthResponse(session *services.Session, message string) authResponse {
	return authResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      newUserResponse(session.User),
		Message:   message,
	}
}

// RegisterHandler creates a Customer account and logs it in.
func RegisterHandler(c *gin.Context, accounts *services.AccountService) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := accounts.Register(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(session, "Registration successful."))
}

func LoginHandler(c *gin.Context, accounts *services.AccountService) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(session, fmt.Sprintf("%s login success", session.User.Username)))
}

// LogOutHandler revokes the token the request was made with.
func LogOutHandler(c *gin.Context, accounts *services.AccountService) {
	token := middleware.CurrentToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "authentication required",
		})
		return
	}

	if err := accounts.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "logged out",
	})
}

func GetUserProfileHandler(c *gin.Context, accounts *services.AccountService) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	user, err := accounts.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		userResponse: newUserResponse(*user),
		Address:      user.Address,
		CreatedAt:    user.CreatedAt,
	})
}
