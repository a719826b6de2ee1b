package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/http/response"
	"github.com/linkcard-next/internal/repository"
	"github.com/linkcard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminProfiles 获取名片列表 (Admin)
func (h *Handler) GetAdminProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	keyword := strings.TrimSpace(c.Query("keyword"))
	status := strings.TrimSpace(c.Query("status"))

	if status != "" && status != constants.ProfileStatusActive && status != constants.ProfileStatusBanned {
		respondError(c, response.CodeBadRequest, "状态参数无效", nil)
		return
	}

	profiles, total, err := h.ProfileRepo.List(repository.ProfileListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  keyword,
		Status:   status,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "获取名片列表失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, profiles, pagination)
}

// CreateProfileRequest 创建名片请求
type CreateProfileRequest struct {
	TagNo     string `json:"tag_no" binding:"required"`
	PIN       string `json:"pin" binding:"required"`
	OwnerName string `json:"owner_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Whatsapp  string `json:"whatsapp"`
	Address   string `json:"address"`
	Note      string `json:"note"`
}

// CreateProfile 创建名片
func (h *Handler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.ProfileService.Create(service.CreateProfileInput{
		TagNo:     req.TagNo,
		PIN:       req.PIN,
		OwnerName: req.OwnerName,
		Phone:     req.Phone,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Address:   req.Address,
		Note:      req.Note,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPINFormat) {
			respondError(c, response.CodeBadRequest, "口令必须为 5 位数字", nil)
			return
		}
		if isDuplicateKeyError(err) {
			respondError(c, response.CodeBadRequest, "标签号已存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "创建名片失败", err)
		return
	}

	response.Success(c, profile)
}

// GetAdminProfile 获取名片详情 (Admin)
func (h *Handler) GetAdminProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	profile, err := h.ProfileService.GetByPublicCode(code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "名片不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取名片失败", err)
		return
	}

	response.Success(c, profile)
}

// UpdateProfileRequest 管理端更新名片请求，nil 字段不修改
type UpdateProfileRequest struct {
	OwnerName *string `json:"owner_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Whatsapp  *string `json:"whatsapp"`
	Address   *string `json:"address"`
	Note      *string `json:"note"`
	PhotoURL  *string `json:"photo_url"`
}

// UpdateProfile 管理端更新名片联系字段
func (h *Handler) UpdateProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.ProfileService.AdminUpdate(code, service.ContactPatch{
		OwnerName: req.OwnerName,
		Phone:     req.Phone,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Address:   req.Address,
		Note:      req.Note,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "名片不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新名片失败", err)
		return
	}

	response.Success(c, profile)
}

// DeleteProfile 删除名片（物理删除）
func (h *Handler) DeleteProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	if err := h.ProfileService.Delete(code); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "名片不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "删除名片失败", err)
		return
	}

	response.Success(c, nil)
}

// BanProfile 封禁名片
func (h *Handler) BanProfile(c *gin.Context) {
	h.setProfileStatus(c, constants.ProfileStatusBanned)
}

// UnbanProfile 解封名片
func (h *Handler) UnbanProfile(c *gin.Context) {
	h.setProfileStatus(c, constants.ProfileStatusActive)
}

func (h *Handler) setProfileStatus(c *gin.Context, status string) {
	code := strings.TrimSpace(c.Param("code"))

	newStatus, err := h.ProfileService.SetStatus(code, status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "名片不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "更新名片状态失败", err)
		return
	}

	requestLog(c).Infow("profile_status_changed",
		"public_code", code,
		"status", newStatus,
	)
	response.Success(c, gin.H{
		"public_code": code,
		"status":      newStatus,
	})
}

// BulkProfilesRequest 批量操作请求
type BulkProfilesRequest struct {
	Action string   `json:"action" binding:"required"`
	Codes  []string `json:"codes" binding:"required"`
}

// BulkProfiles 批量封禁/解封/删除名片
// 返回请求的条目数，未命中的访问码被静默跳过。
func (h *Handler) BulkProfiles(c *gin.Context) {
	var req BulkProfilesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if len(req.Codes) == 0 {
		respondError(c, response.CodeBadRequest, "访问码列表不能为空", nil)
		return
	}

	var err error
	switch req.Action {
	case constants.BulkActionBan:
		err = h.ProfileRepo.BatchUpdateStatus(req.Codes, constants.ProfileStatusBanned)
	case constants.BulkActionUnban:
		err = h.ProfileRepo.BatchUpdateStatus(req.Codes, constants.ProfileStatusActive)
	case constants.BulkActionDelete:
		err = h.ProfileRepo.BatchDelete(req.Codes)
	default:
		respondError(c, response.CodeBadRequest, "不支持的批量操作", nil)
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "批量操作失败", err)
		return
	}

	requestLog(c).Infow("profile_bulk_action",
		"action", req.Action,
		"count", len(req.Codes),
	)
	response.Success(c, gin.H{
		"action": req.Action,
		"count":  len(req.Codes),
	})
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
