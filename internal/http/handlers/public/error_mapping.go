package public

import (
	"errors"

	handlershared "github.com/linkcard-next/internal/http/handlers/shared"
	"github.com/linkcard-next/internal/http/response"
	"github.com/linkcard-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var ownerVerifyErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "凭证无效"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "名片不存在"},
	{target: service.ErrProfileBanned, code: response.CodeForbidden, msg: "名片已被封禁"},
	{target: service.ErrPINMismatch, code: response.CodeUnauthorized, msg: "口令不正确"},
	{target: service.ErrInvalidPINFormat, code: response.CodeBadRequest, msg: "口令必须为 5 位数字"},
}
