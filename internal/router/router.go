package router

import (
	"fmt"
	"strings"

	"github.com/linkcard-next/internal/cache"
	"github.com/linkcard-next/internal/config"
	adminhandlers "github.com/linkcard-next/internal/http/handlers/admin"
	publichandlers "github.com/linkcard-next/internal/http/handlers/public"
	"github.com/linkcard-next/internal/logger"
	"github.com/linkcard-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "lc"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开/持有人接口
		apiV1.GET("/profiles/:code", publicHandler.GetProfile)
		apiV1.POST("/profiles/:code/verify", publicHandler.VerifyProfile)
		apiV1.POST("/verify", publicHandler.VerifyByTag)
		apiV1.PUT("/profiles/:code", publicHandler.UpdateProfile)
		apiV1.PUT("/profiles/:code/pin", publicHandler.ChangeProfilePIN)
		apiV1.POST("/profiles/:code/photo", publicHandler.UploadProfilePhoto)

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)

			// 以下接口需要鉴权
			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey))
			{
				authed.GET("/me", adminHandler.GetAdminMe)
				authed.PUT("/password", adminHandler.UpdateAdminPassword)
				authed.POST("/upload", adminHandler.UploadFile)

				authed.GET("/profiles", adminHandler.GetAdminProfiles)
				authed.POST("/profiles", adminHandler.CreateProfile)
				authed.GET("/profiles/:code", adminHandler.GetAdminProfile)
				authed.PUT("/profiles/:code", adminHandler.UpdateProfile)
				authed.DELETE("/profiles/:code", adminHandler.DeleteProfile)
				authed.PUT("/profiles/:code/ban", adminHandler.BanProfile)
				authed.PUT("/profiles/:code/unban", adminHandler.UnbanProfile)
				authed.POST("/profiles/bulk", adminHandler.BulkProfiles)

				authed.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			}
		}
	}

	return r
}
