package service

import "errors"

// 服务层统一哨兵错误，由各 handler 映射为响应码。
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("凭证无效")
	ErrInvalidPassword    = errors.New("原密码不正确")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrProfileBanned      = errors.New("名片已被封禁")
	ErrPINMismatch        = errors.New("口令不正确")
	ErrInvalidPINFormat   = errors.New("口令必须为 5 位数字")
	ErrUploadTooLarge     = errors.New("文件大小超过限制")
	ErrUploadTypeInvalid  = errors.New("文件类型不被允许")
)
