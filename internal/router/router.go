package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/controller"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"

	_ "github.com/sardarit-bd/gulf-cost-music-sub004/docs"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	marketCtl *controller.MarketplaceController,
	billingCtl *controller.BillingController,
	eventCtl *controller.EventController,
	newsCtl *controller.NewsController,
	adminCtl *controller.AdminController) {

	// 媒体上传较大，放宽内存水位
	r.MaxMultipartMemory = 32 << 20

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authCtl.Signup)
			auth.POST("/signin", authCtl.Signin)
			auth.POST("/signout", authCtl.Signout)
			auth.POST("/refresh", authCtl.Refresh)
			auth.GET("/me", middleware.JWTAuth(), authCtl.Me)
			auth.PUT("/me", middleware.JWTAuth(), authCtl.UpdateProfile)
		}

		// 公开浏览，无需登录
		api.GET("/marketplace", marketCtl.Browse)
		api.GET("/events", eventCtl.Browse)
		api.GET("/events/:id", eventCtl.Get)
		api.GET("/news", newsCtl.Browse)
		api.GET("/news/:slug", newsCtl.GetBySlug)

		// marketplace 挂牌生命周期（卖家视角）
		market := api.Group("/artists/marketplace", middleware.JWTAuth(), middleware.AuditContext())
		{
			market.GET("/mine", marketCtl.GetMine)
			market.POST("", middleware.Throttle(middleware.ActionListingSubmit, 3*time.Second), marketCtl.Create)
			market.PUT("", middleware.Throttle(middleware.ActionListingSubmit, 3*time.Second), marketCtl.Update)
			market.DELETE("", marketCtl.Delete)
		}

		// billing 收款
		billing := api.Group("/billing", middleware.JWTAuth())
		{
			billing.GET("/status", billingCtl.Status)
		}
		api.POST("/stripe/connect/onboard", middleware.JWTAuth(), billingCtl.Onboard)

		// events 场馆端
		venueEvents := api.Group("/venues/events",
			middleware.JWTAuth(), middleware.AuditContext(),
			middleware.RequireRole(model.RoleVenue, model.RoleAdmin))
		{
			venueEvents.GET("/mine", eventCtl.Mine)
			venueEvents.POST("", eventCtl.Create)
			venueEvents.PUT("/:id", eventCtl.Update)
			venueEvents.POST("/:id/cancel", eventCtl.Cancel)
		}

		// news 记者端
		journalistNews := api.Group("/journalists/news",
			middleware.JWTAuth(), middleware.AuditContext(),
			middleware.RequireRole(model.RoleJournalist, model.RoleAdmin))
		{
			journalistNews.GET("/mine", newsCtl.Mine)
			journalistNews.POST("", newsCtl.Create)
			journalistNews.PUT("/:id", newsCtl.Update)
			journalistNews.POST("/:id/publish", newsCtl.Publish)
			journalistNews.DELETE("/:id", newsCtl.Delete)
		}

		// admin 管理端
		admin := api.Group("/admin",
			middleware.JWTAuth(), middleware.AuditContext(),
			middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/users", adminCtl.ListUsers)
			admin.POST("/users/:id/suspend", adminCtl.Suspend)
			admin.POST("/users/:id/unsuspend", adminCtl.Unsuspend)
			admin.DELETE("/users/:id/listing", adminCtl.RemoveListing)
		}
	}
}
