package repository

import (
	"time"

	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。五项计数相互独立，
// 并发写入下不保证同一瞬间的一致快照。
type DashboardRepository interface {
	GetProfileCounts(now time.Time) (DashboardProfileCountsRow, error)
}

// DashboardProfileCountsRow 名片统计原始结果
type DashboardProfileCountsRow struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Banned       int64 `json:"banned"`
	CreatedToday int64 `json:"created_today"`
	CreatedWeek  int64 `json:"created_week"`
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetProfileCounts 获取名片统计
// 今日口径为 UTC 自然日，近一周口径为滚动 7x24 小时。
func (r *GormDashboardRepository) GetProfileCounts(now time.Time) (DashboardProfileCountsRow, error) {
	result := DashboardProfileCountsRow{}

	base := func() *gorm.DB {
		return r.db.Model(&models.Profile{})
	}

	if err := base().Count(&result.Total).Error; err != nil {
		return result, err
	}
	if err := base().
		Where("status = ?", constants.ProfileStatusActive).
		Count(&result.Active).Error; err != nil {
		return result, err
	}
	if err := base().
		Where("status = ?", constants.ProfileStatusBanned).
		Count(&result.Banned).Error; err != nil {
		return result, err
	}

	utcNow := now.UTC()
	todayStart := time.Date(utcNow.Year(), utcNow.Month(), utcNow.Day(), 0, 0, 0, 0, time.UTC)
	if err := base().
		Where("created_at >= ?", todayStart).
		Count(&result.CreatedToday).Error; err != nil {
		return result, err
	}

	weekStart := utcNow.Add(-7 * 24 * time.Hour)
	if err := base().
		Where("created_at >= ?", weekStart).
		Count(&result.CreatedWeek).Error; err != nil {
		return result, err
	}

	return result, nil
}
