package main

import (
	"strings"

	"github.com/linkcard-next/internal/config"
	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/logger"
	"github.com/linkcard-next/internal/models"

	"github.com/google/uuid"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	db, err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin(db, "", ""); err != nil {
		stdLog.Fatalf("Failed to seed admin: %v", err)
	}

	// 示例名片
	profiles := []models.Profile{
		{
			TagNo:     "LC-1001",
			PIN:       "13579",
			OwnerName: "张伟",
			Phone:     "+86 138 0000 1001",
			Email:     "zhangwei@example.com",
			Whatsapp:  "+86 138 0000 1001",
			Address:   "北京市朝阳区建国路 88 号",
			Note:      "工作日 9:00-18:00 可联系",
			Status:    constants.ProfileStatusActive,
		},
		{
			TagNo:     "LC-1002",
			PIN:       "24680",
			OwnerName: "李娜",
			Phone:     "+86 139 0000 1002",
			Email:     "lina@example.com",
			Address:   "上海市徐汇区漕溪北路 331 号",
			Status:    constants.ProfileStatusActive,
		},
		{
			TagNo:     "LC-1003",
			PIN:       "99999",
			OwnerName: "王芳",
			Phone:     "+86 137 0000 1003",
			Email:     "wangfang@example.com",
			Note:      "已停用的示例名片",
			Status:    constants.ProfileStatusBanned,
		},
	}

	for i := range profiles {
		profile := &profiles[i]
		var count int64
		if err := db.Model(&models.Profile{}).Where("tag_no = ?", profile.TagNo).Count(&count).Error; err != nil {
			stdLog.Fatalf("Failed to check profile %s: %v", profile.TagNo, err)
		}
		if count > 0 {
			stdLog.Printf("Profile %s already exists, skipped", profile.TagNo)
			continue
		}
		profile.PublicCode = strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
		if err := db.Create(profile).Error; err != nil {
			stdLog.Fatalf("Failed to seed profile %s: %v", profile.TagNo, err)
		}
		stdLog.Printf("Seeded profile %s (public_code=%s)", profile.TagNo, profile.PublicCode)
	}

	stdLog.Println("Seed completed")
}
