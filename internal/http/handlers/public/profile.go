package public

import (
	"errors"
	"strings"

	"github.com/linkcard-next/internal/http/response"
	"github.com/linkcard-next/internal/models"
	"github.com/linkcard-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicProfileView 公开名片响应结构，口令与内部编号不对外暴露。
type PublicProfileView struct {
	PublicCode string `json:"public_code"`
	TagNo      string `json:"tag_no"`
	OwnerName  string `json:"owner_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Whatsapp   string `json:"whatsapp"`
	Address    string `json:"address"`
	Note       string `json:"note"`
	PhotoURL   string `json:"photo_url"`
	Status     string `json:"status"`
}

func toPublicProfileView(profile *models.Profile) PublicProfileView {
	return PublicProfileView{
		PublicCode: profile.PublicCode,
		TagNo:      profile.TagNo,
		OwnerName:  profile.OwnerName,
		Phone:      profile.Phone,
		Email:      profile.Email,
		Whatsapp:   profile.Whatsapp,
		Address:    profile.Address,
		Note:       profile.Note,
		PhotoURL:   profile.PhotoURL,
		Status:     profile.Status,
	}
}

// GetProfile 公开获取名片
func (h *Handler) GetProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	profile, err := h.ProfileService.GetPublic(code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "名片不存在", nil)
			return
		}
		if errors.Is(err, service.ErrProfileBanned) {
			respondError(c, response.CodeForbidden, "名片已被封禁", nil)
			return
		}
		respondError(c, response.CodeInternal, "获取名片失败", err)
		return
	}

	response.Success(c, toPublicProfileView(profile))
}

// VerifyScopedRequest 名片内凭证校验请求
type VerifyScopedRequest struct {
	TagNo string `json:"tag_no" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// VerifyProfile 名片内凭证校验
// 公开码、标签号与口令三者须同时匹配，任一不符均返回同一错误。
func (h *Handler) VerifyProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	var req VerifyScopedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.ProfileService.VerifyScoped(code, req.TagNo, req.PIN)
	if err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "校验失败")
		return
	}

	response.Success(c, toPublicProfileView(profile))
}

// VerifyByTagRequest 标签号凭证校验请求
type VerifyByTagRequest struct {
	TagNo string `json:"tag_no" binding:"required"`
	PIN   string `json:"pin" binding:"required"`
}

// VerifyByTag 标签号凭证校验，成功返回公开访问码
func (h *Handler) VerifyByTag(c *gin.Context) {
	var req VerifyByTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.ProfileService.VerifyByTagNo(req.TagNo, req.PIN)
	if err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "校验失败")
		return
	}

	response.Success(c, gin.H{
		"public_code": profile.PublicCode,
	})
}

// OwnerUpdateRequest 持有人更新请求，nil 字段不修改
type OwnerUpdateRequest struct {
	TagNo     string  `json:"tag_no" binding:"required"`
	PIN       string  `json:"pin" binding:"required"`
	OwnerName *string `json:"owner_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Whatsapp  *string `json:"whatsapp"`
	Address   *string `json:"address"`
	Note      *string `json:"note"`
}

// UpdateProfile 持有人更新联系字段
func (h *Handler) UpdateProfile(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	var req OwnerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.ProfileService.OwnerUpdate(code, req.TagNo, req.PIN, service.ContactPatch{
		OwnerName: req.OwnerName,
		Phone:     req.Phone,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Address:   req.Address,
		Note:      req.Note,
	})
	if err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "更新名片失败")
		return
	}

	response.Success(c, toPublicProfileView(profile))
}

// ChangePINRequest 修改口令请求
type ChangePINRequest struct {
	TagNo      string `json:"tag_no" binding:"required"`
	CurrentPIN string `json:"current_pin" binding:"required"`
	NewPIN     string `json:"new_pin" binding:"required"`
}

// ChangeProfilePIN 持有人修改口令
func (h *Handler) ChangeProfilePIN(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))

	var req ChangePINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.ProfileService.ChangePIN(code, req.TagNo, req.CurrentPIN, req.NewPIN); err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "修改口令失败")
		return
	}

	response.Success(c, nil)
}

// UploadProfilePhoto 持有人上传名片头像
// 先校验持有人凭证，文件校验不通过时不落库。
func (h *Handler) UploadProfilePhoto(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	tagNo := strings.TrimSpace(c.PostForm("tag_no"))
	pin := strings.TrimSpace(c.PostForm("pin"))
	if tagNo == "" || pin == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	if _, err := h.ProfileService.VerifyScoped(code, tagNo, pin); err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "校验失败")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "缺少上传文件", nil)
		return
	}

	url, err := h.UploadService.SaveFile(file, "profile")
	if err != nil {
		if errors.Is(err, service.ErrUploadTypeInvalid) {
			respondError(c, response.CodeBadRequest, "文件类型不被允许", nil)
			return
		}
		respondError(c, response.CodeInternal, "上传失败", err)
		return
	}

	profile, err := h.ProfileService.SetPhoto(code, tagNo, pin, url)
	if err != nil {
		respondWithMappedError(c, err, ownerVerifyErrorRules, response.CodeInternal, "更新名片失败")
		return
	}

	response.Success(c, gin.H{
		"photo_url": profile.PhotoURL,
	})
}
