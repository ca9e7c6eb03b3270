package main

import (
	"github.com/ai-native-85/tinytummy/config"
	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
	"github.com/ai-native-85/tinytummy/routes"
	"github.com/ai-native-85/tinytummy/stores"
	"github.com/ai-native-85/tinytummy/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.Child{}, &models.Meal{},
		&models.DailyScore{}, &models.PointsLedgerEntry{}, &models.Streak{},
		&models.Badge{}, &models.UserBadge{},
	)

	set := stores.NewSet(db)
	engine := gamification.NewEngine(set.Children, set.Meals, set.Scores, set.Ledger, set.Streaks, set.Badges, utils.Sugar)

	r := routes.SetupRouter(db, set, engine)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.Serve(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
