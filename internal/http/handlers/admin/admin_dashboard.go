package admin

import (
	"github.com/linkcard-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 获取后台仪表盘统计
func (h *Handler) GetDashboardStats(c *gin.Context) {
	forceRefresh := c.Query("force_refresh") == "true"

	stats, err := h.DashboardService.GetStats(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "获取统计数据失败", err)
		return
	}

	response.Success(c, stats)
}
