package service

import (
	"context"
	"time"

	"github.com/linkcard-next/internal/cache"
	"github.com/linkcard-next/internal/logger"
	"github.com/linkcard-next/internal/repository"
)

const dashboardStatsCacheKey = "dashboard:stats"
const dashboardStatsCacheTTL = 60 * time.Second

// DashboardService 仪表盘统计服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务实例
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetStats 获取名片统计
// 结果短暂缓存；force_refresh 绕过缓存。缓存读写失败只记日志，不影响主流程。
func (s *DashboardService) GetStats(ctx context.Context, forceRefresh bool) (repository.DashboardProfileCountsRow, error) {
	if !forceRefresh {
		var cached repository.DashboardProfileCountsRow
		hit, err := cache.GetJSON(ctx, dashboardStatsCacheKey, &cached)
		if err != nil {
			logger.Warnw("dashboard_stats_cache_read_failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	row, err := s.dashboardRepo.GetProfileCounts(time.Now())
	if err != nil {
		return row, err
	}

	if err := cache.SetJSON(ctx, dashboardStatsCacheKey, row, dashboardStatsCacheTTL); err != nil {
		logger.Warnw("dashboard_stats_cache_write_failed", "error", err)
	}
	return row, nil
}
