package router

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/config"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/handler"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/middleware"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/store"
)

// Setup configures the gin engine and mounts every API route.
func Setup(cfg *config.Config, log *zap.Logger, db *gorm.DB, stores *store.Stores, svc *auth.Service) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	api := r.Group("/api")

	cookieSecure := cfg.Auth.CookieSecure || cfg.Server.Mode == gin.ReleaseMode
	authHandler := handler.NewAuthHandler(svc, cfg.Auth.SessionTTL(), cookieSecure)

	// Login and the session probe work without a live session.
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/session", authHandler.Session)
	api.POST("/auth/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.RequireSession(svc))

	protected.POST("/auth/change-password", authHandler.ChangePassword)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)

	txHandler := handler.NewTransactionHandler(stores.Transactions)
	protected.GET("/transactions", txHandler.List)
	protected.POST("/transactions", txHandler.Create)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)

	accountHandler := handler.NewAccountHandler(stores.Accounts)
	protected.GET("/accounts", accountHandler.List)
	protected.PUT("/accounts/:id/balance", accountHandler.UpdateBalance)

	commitmentHandler := handler.NewCommitmentHandler(stores.Commitments, stores.Payments)
	protected.GET("/commitments", commitmentHandler.List)
	protected.POST("/commitments", commitmentHandler.Create)
	protected.PUT("/commitments/:id", commitmentHandler.Update)
	protected.DELETE("/commitments/:id", commitmentHandler.Delete)
	protected.GET("/commitment-payments", commitmentHandler.ListPayments)
	protected.POST("/commitment-payments", commitmentHandler.UpsertPayment)
	protected.DELETE("/commitment-payments/:id", commitmentHandler.DeletePayment)

	wishlistHandler := handler.NewWishlistHandler(stores.Wishlist)
	protected.GET("/wishlist", wishlistHandler.List)
	protected.POST("/wishlist", wishlistHandler.Create)
	protected.PUT("/wishlist/:id", wishlistHandler.Update)
	protected.DELETE("/wishlist/:id", wishlistHandler.Delete)

	debtHandler := handler.NewDebtHandler(stores.Debts)
	protected.GET("/debts", debtHandler.List)
	protected.POST("/debts", debtHandler.Create)
	protected.PUT("/debts/:id", debtHandler.Update)
	protected.DELETE("/debts/:id", debtHandler.Delete)

	dashboardHandler := handler.NewDashboardHandler(stores)
	protected.GET("/dashboard", dashboardHandler.Summary)

	exportHandler := handler.NewExportHandler(stores.Transactions)
	protected.GET("/export/csv", exportHandler.CSV)
	protected.GET("/export/xlsx", exportHandler.XLSX)

	backendCfg := BackendsFromConfig(cfg)
	backupHandler := handler.NewBackupHandler(db, stores,
		cfg.Security.EncryptionKey, cfg.Backup.Dir, !backendCfg.AnyRemote())
	protected.POST("/backups", backupHandler.Create)
	protected.GET("/backups", backupHandler.List)
	protected.GET("/backups/:id/download", backupHandler.Download)
	protected.POST("/backups/:id/restore", backupHandler.Restore)
	protected.DELETE("/backups/:id", backupHandler.Delete)

	return r
}

// BackendsFromConfig maps the config strings onto the store's backend
// selection.
func BackendsFromConfig(cfg *config.Config) store.Backends {
	return store.Backends{
		Auth:         store.Backend(cfg.Backend.Auth),
		Transactions: store.Backend(cfg.Backend.Transactions),
		Accounts:     store.Backend(cfg.Backend.Accounts),
		Commitments:  store.Backend(cfg.Backend.Commitments),
		Wishlist:     store.Backend(cfg.Backend.Wishlist),
		Debts:        store.Backend(cfg.Backend.Debts),
	}
}
