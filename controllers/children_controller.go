package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
	"github.com/ai-native-85/tinytummy/stores"
	"github.com/ai-native-85/tinytummy/utils"
)

// ChildController manages child profiles, the owners of all gamification
// records.
type ChildController struct {
	db       *gorm.DB
	children *stores.Children
}

// NewChildController creates a new ChildController instance.
func NewChildController(db *gorm.DB, children *stores.Children) *ChildController {
	return &ChildController{db: db, children: children}
}

// CreateChild registers a child profile for the authenticated user.
func (c *ChildController) CreateChild(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}

	var req struct {
		Name        string   `json:"name" binding:"required,min=1"`
		DateOfBirth string   `json:"date_of_birth" binding:"required"`
		Gender      string   `json:"gender"`
		Region      string   `json:"region"`
		WeightKg    *float64 `json:"weight_kg"`
		HeightCm    *float64 `json:"height_cm"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	if _, err := time.Parse(models.DateLayout, req.DateOfBirth); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "date_of_birth must be YYYY-MM-DD")
		return
	}

	child := models.Child{
		UserID:      userID,
		Name:        utils.Sanitize(strings.TrimSpace(req.Name)),
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Region:      req.Region,
		WeightKg:    req.WeightKg,
		HeightCm:    req.HeightCm,
	}
	if child.Name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "name cannot be empty")
		return
	}

	if err := c.db.Create(&child).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create child")
		return
	}

	utils.Success(ctx, gin.H{"child": child})
}

// ListChildren returns the caller's children.
func (c *ChildController) ListChildren(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}

	var children []models.Child
	if err := c.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&children).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list children")
		return
	}

	utils.Success(ctx, gin.H{"children": children})
}

// DeleteChild removes a child together with every row it owns: meals, daily
// scores, ledger entries, and the streak.
func (c *ChildController) DeleteChild(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	childID := ctx.Param("id")

	if err := c.children.PurgeChild(ctx.Request.Context(), userID, childID); err != nil {
		if errors.Is(err, gamification.ErrChildNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "child not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to delete child")
		return
	}

	invalidateSummaryCache(userID, childID)
	utils.Success(ctx, gin.H{"deleted": childID})
}
