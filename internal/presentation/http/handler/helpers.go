package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetSchoolID extracts the school ID from the Gin context
func GetSchoolID(c *gin.Context) *uuid.UUID {
	schoolIDVal, exists := c.Get("school_id")
	if !exists {
		return nil
	}
	schoolID, ok := schoolIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &schoolID
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}
