package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finance-manager/internal/auth"
	"finance-manager/internal/config"
	"finance-manager/internal/controllers"
	"finance-manager/internal/rates"
	"finance-manager/internal/services"
)

func Register(db *gorm.DB, cfg config.Config) *gin.Engine {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	accountService := services.NewAccountService(db)
	uc := controllers.UserController{Users: services.NewUserService(db, tokens)}
	ac := controllers.AccountController{Accounts: accountService}
	tc := controllers.TransactionController{
		Transactions: services.NewTransactionService(db, accountService),
		Accounts:     accountService,
	}
	cc := controllers.CategoryController{Categories: services.NewCategoryService(db)}
	rc := controllers.RatesController{
		Exchange: rates.NewExchangeRateClient(nil, cfg.ExchangeRateURL, cfg.ExchangeRateAPIKey, cfg.RateCacheTTL),
		Nbp:      rates.NewNbpClient(nil, cfg.NbpURL, cfg.GoldCacheTTL),
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	users := r.Group("/users")
	users.POST("/register", uc.Register)
	users.POST("/login", uc.Login)

	me := users.Group("/me", auth.Middleware(tokens))
	me.GET("", uc.Me)
	me.PUT("", uc.UpdateMe)
	me.DELETE("", uc.DeleteMe)

	api := r.Group("/api", auth.Middleware(tokens))

	api.GET("/accounts", ac.List)
	api.POST("/accounts", ac.Create)
	api.GET("/accounts/:accountId", ac.GetByID)
	api.PUT("/accounts/:accountId", ac.Update)
	api.DELETE("/accounts/:accountId", ac.Delete)
	api.POST("/accounts/:accountId/permissions", ac.AddPermission)
	api.DELETE("/accounts/:accountId/permissions/:userId", ac.RemovePermission)

	api.GET("/accounts/:accountId/transactions", tc.List)
	api.POST("/accounts/:accountId/transactions", tc.Create)
	api.GET("/accounts/:accountId/transactions/:transactionId", tc.GetByID)
	api.PUT("/accounts/:accountId/transactions/:transactionId", tc.Update)
	api.DELETE("/accounts/:accountId/transactions/:transactionId", tc.Delete)

	api.GET("/categories", cc.List)
	api.POST("/categories", cc.Create)
	api.GET("/categories/:id", cc.GetByID)
	api.PUT("/categories/:id", cc.Update)
	api.DELETE("/categories/:id", cc.Delete)

	api.GET("/rates/current", rc.Current)
	api.GET("/rates/historical", rc.Historical)
	api.GET("/rates/gold", rc.Gold)

	return r
}
