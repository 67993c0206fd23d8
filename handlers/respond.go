package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"FoodOrder/middleware"
	"FoodOrder/models"
	"FoodOrder/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError turns a service error into a status and message. Anything
// unexpected is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	}

	_ = c.Error(err)
	if status == http.StatusInternalServerError {
		middleware.RequestLogger(c).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{
			"message": "internal server error",
		})
		return
	}

	c.JSON(status, gin.H{
		"message": err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "invalid request body",
		"error":   err.Error(),
	})
}

// pathID reads a positive integer path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated user. Routes that reach a handler
// through the authorization policy always have one.
func caller(c *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "authentication required",
		})
	}
	return userID, ok
}

func isAdmin(c *gin.Context) bool {
	return middleware.CurrentRole(c) == models.RoleAdmin
}

// resolveUser picks the user a cart request acts on. Customers may only
// act on themselves; admins on anyone.
func resolveUser(c *gin.Context, requested uint) (uint, bool) {
	userID, ok := caller(c)
	if !ok {
		return 0, false
	}
	if requested == 0 || requested == userID {
		return userID, true
	}
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"message": "you can only access your own cart",
		})
		return 0, false
	}
	return requested, true
}

// ownerScope is the owner restriction passed to services: the caller for
// customers, none for admins.
func ownerScope(c *gin.Context, userID uint) uint {
	if isAdmin(c) {
		return 0
	}
	return userID
}
