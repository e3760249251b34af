package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/controller"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/router"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/task"
	"github.com/sardarit-bd/gulf-cost-music-sub004/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	tasks := initTasks(deps)
	defer tasks.Stop()

	// 4. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Marketplace,
		deps.Controllers.Billing,
		deps.Controllers.Event,
		deps.Controllers.News,
		deps.Controllers.Admin,
	)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Controllers *Controllers
	Services    *Services
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Listing repository.ListingRepository
	Event   repository.EventRepository
	News    repository.NewsRepository
	Billing repository.BillingRepository
	Media   repository.MediaRepository
}

// Services 服务集合
type Services struct {
	Media   *service.MediaService
	Storage *service.StorageService
	Listing *service.ListingService
	Auth    *service.AuthService
	Billing *service.BillingService
	Event   *service.EventService
	News    *service.NewsService
	Admin   *service.AdminService
}

// Controllers 控制器集合
type Controllers struct {
	Auth        *controller.AuthController
	Marketplace *controller.MarketplaceController
	Billing     *controller.BillingController
	Event       *controller.EventController
	News        *controller.NewsController
	Admin       *controller.AdminController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=gulf_coast_music port=5432 sslmode=disable")

	db := database.InitDB(dsn, getEnv("DB_DEBUG", "") == "true",
		// Account
		&model.User{},
		// Marketplace
		&model.Listing{}, &model.ListingPhoto{},
		// Event
		&model.Event{},
		// News
		&model.NewsArticle{},
		// Billing
		&model.BillingAccount{},
		// Media ledger
		&model.MediaObject{},
	)

	middleware.RegisterAuditCallbacks(db)
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	jwtCfg := middleware.DefaultJWTConfig()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		jwtCfg.SecretKey = secret
	}
	middleware.SetJWTConfig(jwtCfg)

	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 存储服务 --------
	storageSvc := initStorageService()
	if storageSvc != nil {
		storageSvc.SetRecorder(repos.Media)
	}

	// -------- 业务服务 --------
	mediaSvc := service.NewMediaService()
	services := &Services{
		Media:   mediaSvc,
		Storage: storageSvc,
	}

	services.Listing = service.NewListingService(repos.Listing, mediaSvc, storageSvc)
	services.Auth = service.NewAuthService(repos.User)
	services.Billing = service.NewBillingService(repos.Billing, &service.StripeConfig{
		SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		RefreshURL: getEnv("STRIPE_REFRESH_URL", "https://gulfcoastmusic.com/billing/refresh"),
		ReturnURL:  getEnv("STRIPE_RETURN_URL", "https://gulfcoastmusic.com/billing/return"),
	})
	services.Event = service.NewEventService(repos.Event, repos.User)
	services.News = service.NewNewsService(repos.News)
	services.Admin = service.NewAdminService(repos.User, services.Listing)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Controllers: controllers,
		Services:    services,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    repository.NewUserRepository(db),
		Listing: repository.NewListingRepository(db),
		Event:   repository.NewEventRepository(db),
		News:    repository.NewNewsRepository(db),
		Billing: repository.NewBillingRepository(db),
		Media:   repository.NewMediaRepository(db),
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", "us-east-1"),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "gulf-coast-music"),
		LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8080/uploads"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *Controllers {
	return &Controllers{
		Auth:        controller.NewAuthController(svc.Auth),
		Marketplace: controller.NewMarketplaceController(svc.Listing),
		Billing:     controller.NewBillingController(svc.Billing),
		Event:       controller.NewEventController(svc.Event),
		News:        controller.NewNewsController(svc.News),
		Admin:       controller.NewAdminController(svc.Admin),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) *task.TaskManager {
	cfg := task.DefaultConfig()
	if deps.Services.Storage == nil {
		// 没有存储后端就无从回收媒体对象
		cfg.MediaSweepEnabled = false
	}

	var provider service.StorageProvider
	if deps.Services.Storage != nil {
		provider = deps.Services.Storage.GetProvider()
	}

	tasks := task.NewTaskManager(&task.TaskManagerDeps{
		MediaRepo: deps.Repos.Media,
		Storage:   provider,
	}, cfg)
	tasks.Start()
	return tasks
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
