package provider

import (
	"github.com/linkcard-next/internal/cache"
	"github.com/linkcard-next/internal/config"
	"github.com/linkcard-next/internal/logger"
	"github.com/linkcard-next/internal/repository"
	"github.com/linkcard-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminRepo     repository.AdminRepository
	ProfileRepo   repository.ProfileRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthService      *service.AuthService
	ProfileService   *service.ProfileService
	DashboardService *service.DashboardService
	UploadService    *service.UploadService
}

// NewContainer 初始化容器
// 数据库句柄由调用方传入，容器内不持有全局连接。
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.ProfileService = service.NewProfileService(c.ProfileRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.UploadService = service.NewUploadService(c.Config)
}
