package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ai-native-85/tinytummy/middleware"
	"github.com/ai-native-85/tinytummy/models"
	"github.com/ai-native-85/tinytummy/utils"
)

// getUserID extracts the authenticated user ID set by the auth middleware.
func getUserID(ctx *gin.Context) (string, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// dateQuery returns the validated ?date= query value, defaulting to today.
func dateQuery(ctx *gin.Context) (string, bool) {
	day := ctx.Query("date")
	if day == "" {
		return models.DateOf(time.Now()), true
	}
	if _, err := time.Parse(models.DateLayout, day); err != nil {
		return "", false
	}
	return day, true
}

// summaryCachePrefix scopes cached summaries per (user, child) so a
// recompute can invalidate every cached day for that child at once.
func summaryCachePrefix(userID, childID string) string {
	return "cache:gam:summary:" + userID + ":" + childID + ":"
}

func invalidateSummaryCache(userID, childID string) {
	utils.InvalidateByPrefix(summaryCachePrefix(userID, childID))
}
