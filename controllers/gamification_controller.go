package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ai-native-85/tinytummy/config"
	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/utils"
)

// GamificationController exposes the recompute engine's read and trigger
// surfaces.
type GamificationController struct {
	engine *gamification.Engine
}

// NewGamificationController creates a new controller instance.
func NewGamificationController(engine *gamification.Engine) *GamificationController {
	return &GamificationController{engine: engine}
}

// Summary serves the gamification summary for one child and day. The
// persisted daily score is preferred; a recompute runs only when no score
// row exists yet. Responses are cached briefly in Redis and invalidated on
// every recompute for the child.
func (g *GamificationController) Summary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	childID := ctx.Param("id")
	day, ok := dateQuery(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40040, "date must be YYYY-MM-DD")
		return
	}

	cacheKey := summaryCachePrefix(userID, childID) + day
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	summary, err := g.engine.SummaryForDay(ctx.Request.Context(), userID, childID, day)
	if err != nil {
		if errors.Is(err, gamification.ErrChildNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "child not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load summary")
		return
	}

	ttl := time.Duration(config.Get().SummaryCacheTTLSec) * time.Second
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: summary}, ttl)
	utils.Success(ctx, summary)
}

// Recompute forces a recompute for one child and day and returns the
// resulting snapshot. Used by collaborators (offline sync, support tooling)
// that mutate meals outside the meal endpoints.
func (g *GamificationController) Recompute(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	childID := ctx.Param("id")
	day, ok := dateQuery(ctx)
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40040, "date must be YYYY-MM-DD")
		return
	}

	snapshot, err := g.engine.RecomputeForDay(ctx.Request.Context(), userID, childID, day)
	if err != nil {
		if errors.Is(err, gamification.ErrChildNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "child not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40041, "recompute failed")
		return
	}

	invalidateSummaryCache(userID, childID)
	utils.Success(ctx, snapshot)
}

// Badges lists the caller's earned badges.
func (g *GamificationController) Badges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}

	badges, err := g.engine.Badges(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to list badges")
		return
	}
	if badges == nil {
		badges = []gamification.GrantedBadge{}
	}
	utils.Success(ctx, gin.H{"badges": badges})
}
