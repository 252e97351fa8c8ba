package router

import (
	"time"

	"adclub/config"
	"adclub/internal/domain"
	"adclub/internal/handler"
	"adclub/internal/middleware"
	"adclub/internal/repository"
	"adclub/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	pointRepo := repository.NewPointRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, db, userRepo)
	clubSvc := service.NewClubService(db)
	incomeSvc := service.NewIncomeService(db)
	rewardSvc := service.NewRewardService(db, clubSvc)
	settlementSvc := service.NewSettlementService(db, clubSvc)
	reconcileSvc := service.NewReconcileService(userRepo, pointRepo, clubRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo, clubRepo, pointRepo, referralRepo, incomeSvc)
	earnHandler := handler.NewEarnHandler(catalogRepo, rewardSvc)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalRepo, settlementSvc)
	transferHandler := handler.NewTransferHandler(settlementSvc, userRepo)
	catalogHandler := handler.NewCatalogHandler(catalogRepo)
	adminHandler := handler.NewAdminHandler(userRepo, clubRepo, withdrawalRepo, catalogRepo, settlementSvc, incomeSvc, clubSvc, reconcileSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
		}

		api.GET("/banners", catalogHandler.ListBanners)
		api.GET("/banking-services", catalogHandler.ListBankingServices)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.GET("/clubs", meHandler.GetClubs)
			me.GET("/clubs/:id/bonuses", meHandler.GetClubBonusHistory)
			me.GET("/club-bonuses", meHandler.GetClubBonuses)
			me.GET("/transactions", meHandler.GetTransactions)
			me.GET("/referrals", meHandler.GetReferrals)
			me.GET("/withdrawals", withdrawalHandler.ListMine)
			me.GET("/withdrawals/:orderId", withdrawalHandler.Get)
			me.POST("/withdrawals", withdrawalHandler.Create)
		}

		api.GET("/packages", earnHandler.ListPackages)
		api.GET("/packages/:id", earnHandler.GetPackage)
		api.POST("/packages/:id/purchase", authMw, earnHandler.PurchasePackage)
		api.GET("/ads", authMw, earnHandler.ListAds)
		api.GET("/ads/:id", authMw, earnHandler.GetAd)
		api.POST("/ads/:id/watch", authMw, earnHandler.WatchAd)

		transferMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleShoper)
		api.POST("/transfers", authMw, transferMw, transferHandler.Create)
		api.GET("/transfers/recipients/:serial", authMw, transferMw, transferHandler.PreviewRecipient)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id/reconcile", adminHandler.ReconcileUser)
			admin.GET("/withdrawals", adminHandler.ListWithdrawals)
			admin.GET("/withdrawals/:id", adminHandler.GetWithdrawal)
			admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)
			admin.POST("/credits", adminHandler.ManualCredit)
			admin.POST("/jobs/accrue-income", adminHandler.RunAccrual)
			admin.POST("/jobs/backfill-bonuses", adminHandler.RunBonusBackfill)
			admin.POST("/packages", adminHandler.SavePackage)
			admin.DELETE("/packages/:id", adminHandler.DeletePackage)
			admin.POST("/ads", adminHandler.SaveAd)
			admin.DELETE("/ads/:id", adminHandler.DeleteAd)
			admin.POST("/banners", adminHandler.SaveBanner)
			admin.DELETE("/banners/:id", adminHandler.DeleteBanner)
			admin.POST("/banking-services", adminHandler.SaveBankingService)
			admin.DELETE("/banking-services/:id", adminHandler.DeleteBankingService)
		}
	}

	return r
}
