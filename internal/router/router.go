package router

import (
	"goodturn/config"
	"goodturn/internal/cache"
	"goodturn/internal/domain"
	"goodturn/internal/handler"
	"goodturn/internal/jobs"
	"goodturn/internal/middleware"
	"goodturn/internal/models"
	"goodturn/internal/points"
	"goodturn/internal/repository"
	"goodturn/internal/service"
	"goodturn/internal/ws"
	"goodturn/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// New wires repositories, the points engine, services and handlers into a
// gin engine plus the background job scheduler.
func New(cfg *config.Config, db *gorm.DB, c cache.Cache) (*gin.Engine, *jobs.Scheduler, error) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	verifRepo := repository.NewVerificationRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	if err := settingRepo.SeedDefaults(map[string]string{
		domain.SettingReferralPointsEnabled: "true",
		domain.SettingLeaderboardSize:       "20",
	}); err != nil {
		log.WithError(err).Warn("failed to seed default settings")
	}

	// Points engine
	engineCfg := points.DefaultConfig()
	engineCfg.StreakBonusDays = cfg.Points.StreakBonusDays
	engineCfg.StreakBonus = cfg.Points.StreakBonus
	engineCfg.TrustScoreBaseline = cfg.Points.TrustScoreBaseline
	engineCfg.TrustScoreScale = cfg.Points.TrustScoreScale
	engine, err := points.NewEngine(engineCfg)
	if err != nil {
		return nil, nil, err
	}

	// Live feed
	hub := ws.NewHub()

	// Uploads (optional: endpoints return 503 when not configured)
	var uploads cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		uploads, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.WithError(err).Warn("cloudinary init failed; uploads disabled")
		}
	}

	// Services
	awardSvc := service.NewAwardService(engine, txRepo)
	statsSvc := service.NewStatsService(engine, txRepo, c, cfg.Points.StatsCacheTTL, cfg.Points.LeaderboardCacheTTL)
	notifSvc := service.NewNotificationService(notifRepo, hub)
	statsSvc.SetLevelUpNotifier(notifSvc)
	authSvc := service.NewAuthService(cfg, userRepo)
	referralSvc := service.NewReferralService(referralRepo, settingRepo, awardSvc, notifSvc)
	verificationSvc := service.NewVerificationService(verifRepo, userRepo, awardSvc, notifSvc)
	checkinSvc := service.NewCheckinService(txRepo, awardSvc)

	// Every committed award feeds the stats projection, the notification
	// stream and the live feed, in that order.
	awardSvc.Subscribe(statsSvc.HandleAward)
	awardSvc.Subscribe(notifSvc.NotifyPointsAwarded)
	awardSvc.Subscribe(func(tx models.PointTransaction) error {
		hub.BroadcastToUser(tx.UserID, map[string]interface{}{
			"type":        "points_awarded",
			"transaction": tx,
		})
		return nil
	})

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, referralSvc)
	googleHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, referralSvc)
	meHandler := handler.NewMeHandler(userRepo, statsSvc, uploads)
	pointsHandler := handler.NewPointsHandler(engine, statsSvc, checkinSvc)
	notifHandler := handler.NewNotificationHandler(notifRepo)
	verifHandler := handler.NewVerificationHandler(verificationSvc, verifRepo, uploads)
	referralHandler := handler.NewReferralHandler(referralSvc)
	adminHandler := handler.NewAdminHandler(awardSvc, verificationSvc, userRepo, verifRepo, settingRepo)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := middleware.NewInMemoryRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	r.Use(middleware.RateLimit(limiter))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "ws_clients": hub.ClientCount()})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/google", googleHandler.Redirect)
		authGroup.GET("/google/callback", googleHandler.Callback)
		authGroup.POST("/google/token", googleHandler.Token)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.POST("/auth/change-password", authHandler.ChangePassword)

		me := authed.Group("/me")
		{
			me.GET("", meHandler.GetProfile)
			me.PATCH("", meHandler.UpdateProfile)
			me.POST("/avatar", meHandler.UploadAvatar)
			me.GET("/stats", pointsHandler.GetStats)
			me.GET("/history", pointsHandler.GetHistory)
			me.POST("/checkin", pointsHandler.Checkin)
			me.GET("/referral-code", referralHandler.MyCode)
			me.GET("/referrals", referralHandler.List)
		}

		authed.GET("/ladder", pointsHandler.GetLadder)
		authed.GET("/categories", pointsHandler.GetCategories)
		authed.GET("/leaderboard", pointsHandler.GetLeaderboard)

		authed.GET("/notifications", notifHandler.List)
		authed.POST("/notifications/:id/read", notifHandler.MarkRead)

		authed.POST("/verification", verifHandler.Submit)
		authed.GET("/verification", verifHandler.Status)

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		{
			admin.POST("/awards", adminHandler.Award)
			admin.GET("/verifications", adminHandler.PendingVerifications)
			admin.POST("/verifications/:id/review", adminHandler.ReviewVerification)
			admin.GET("/settings", adminHandler.Settings)
			admin.PUT("/settings", adminHandler.UpdateSetting)
		}
	}

	// Live points feed (token passed as query param)
	r.GET("/ws/points", ws.UpgradePointsFeed(&cfg.JWT, hub))

	scheduler, err := jobs.NewScheduler(cfg, verificationSvc, statsSvc)
	if err != nil {
		return nil, nil, err
	}

	return r, scheduler, nil
}
