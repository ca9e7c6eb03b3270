package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ai-native-85/tinytummy/config"
	"github.com/ai-native-85/tinytummy/controllers"
	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/middleware"
	"github.com/ai-native-85/tinytummy/stores"
	"github.com/ai-native-85/tinytummy/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, set *stores.Set, engine *gamification.Engine) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	ginLogPath := cfg.GinPath
	gl, err := utils.NewRollingFileLogger(ginLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	childController := controllers.NewChildController(db, set.Children)
	mealController := controllers.NewMealController(db, engine)
	gamController := controllers.NewGamificationController(engine)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	api.POST("/children", childController.CreateChild)
	api.GET("/children", childController.ListChildren)
	api.DELETE("/children/:id", childController.DeleteChild)

	api.POST("/children/:id/meals", mealController.CreateMeal)
	api.PATCH("/meals/:id", mealController.UpdateMeal)
	api.DELETE("/meals/:id", mealController.DeleteMeal)

	api.GET("/children/:id/gamification/summary", gamController.Summary)
	api.POST("/children/:id/gamification/recompute", gamController.Recompute)
	api.GET("/gamification/badges", gamController.Badges)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
