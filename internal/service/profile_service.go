package service

import (
	"errors"
	"strings"

	"github.com/linkcard-next/internal/constants"
	"github.com/linkcard-next/internal/models"
	"github.com/linkcard-next/internal/repository"

	"github.com/google/uuid"
)

const publicCodeLength = 10
const publicCodeMaxAttempts = 5

// ProfileService 名片业务服务
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService 创建名片服务实例
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// ContactPatch 联系字段更新集合，nil 表示不修改。
type ContactPatch struct {
	OwnerName *string
	Phone     *string
	Email     *string
	Whatsapp  *string
	Address   *string
	Note      *string
	PhotoURL  *string
}

// CreateProfileInput 创建名片输入
type CreateProfileInput struct {
	TagNo     string
	PIN       string
	OwnerName string
	Phone     string
	Email     string
	Whatsapp  string
	Address   string
	Note      string
}

// Create 创建名片并生成公开访问码
func (s *ProfileService) Create(input CreateProfileInput) (*models.Profile, error) {
	tagNo := strings.TrimSpace(input.TagNo)
	if tagNo == "" {
		return nil, errors.New("标签编号不能为空")
	}
	if err := ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	code, err := s.generatePublicCode()
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		TagNo:      tagNo,
		PIN:        input.PIN,
		PublicCode: code,
		Status:     constants.ProfileStatusActive,
		OwnerName:  strings.TrimSpace(input.OwnerName),
		Phone:      strings.TrimSpace(input.Phone),
		Email:      strings.TrimSpace(input.Email),
		Whatsapp:   strings.TrimSpace(input.Whatsapp),
		Address:    strings.TrimSpace(input.Address),
		Note:       strings.TrimSpace(input.Note),
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetPublic 公开访问名片
// 被封禁的名片不对外展示。
func (s *ProfileService) GetPublic(code string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByPublicCode(code)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.IsBanned() {
		return nil, ErrProfileBanned
	}
	return profile, nil
}

// GetByPublicCode 按访问码获取名片（管理端，不做封禁过滤）
func (s *ProfileService) GetByPublicCode(code string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByPublicCode(code)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// VerifyScoped 访问码限定的持有人校验
// 访问码 + 标签编号 + 口令三者必须同时匹配；任何不匹配均返回同一凭证错误。
// 注意：该路径不检查封禁状态，与按编号校验存在已知的不对称。
func (s *ProfileService) VerifyScoped(code, tagNo, pin string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByCredentials(code, strings.TrimSpace(tagNo), pin)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInvalidCredentials
	}
	return profile, nil
}

// VerifyByTagNo 按标签编号校验持有人并返回名片
// 封禁检查先于口令比较：被封禁的持有人不应得知口令是否仍然有效。
func (s *ProfileService) VerifyByTagNo(tagNo, pin string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByTagNo(strings.TrimSpace(tagNo))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.IsBanned() {
		return nil, ErrProfileBanned
	}
	if profile.PIN != pin {
		return nil, ErrPINMismatch
	}
	return profile, nil
}

// OwnerUpdate 持有人更新联系字段
func (s *ProfileService) OwnerUpdate(code, tagNo, pin string, patch ContactPatch) (*models.Profile, error) {
	profile, err := s.VerifyScoped(code, tagNo, pin)
	if err != nil {
		return nil, err
	}
	applyContactPatch(profile, patch)
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AdminUpdate 管理端更新联系字段，不校验持有人凭证
func (s *ProfileService) AdminUpdate(code string, patch ContactPatch) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByPublicCode(code)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	applyContactPatch(profile, patch)
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ChangePIN 修改名片口令
// 当前口令不匹配返回口令错误且不修改存储值。
func (s *ProfileService) ChangePIN(code, tagNo, currentPIN, newPIN string) error {
	if err := ValidatePIN(newPIN); err != nil {
		return err
	}
	profile, err := s.VerifyScoped(code, tagNo, currentPIN)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrPINMismatch
		}
		return err
	}
	profile.PIN = newPIN
	return s.profileRepo.Update(profile)
}

// SetPhoto 持有人校验后更新头像路径
func (s *ProfileService) SetPhoto(code, tagNo, pin, photoURL string) (*models.Profile, error) {
	profile, err := s.VerifyScoped(code, tagNo, pin)
	if err != nil {
		return nil, err
	}
	profile.PhotoURL = photoURL
	if err := s.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetStatus 设置名片状态并返回新状态
// 重复封禁/解封同样成功，并刷新 updated_at。
func (s *ProfileService) SetStatus(code, status string) (string, error) {
	profile, err := s.profileRepo.GetByPublicCode(code)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", ErrNotFound
	}
	profile.Status = status
	if err := s.profileRepo.Update(profile); err != nil {
		return "", err
	}
	return profile.Status, nil
}

// Delete 物理删除名片
func (s *ProfileService) Delete(code string) error {
	profile, err := s.profileRepo.GetByPublicCode(code)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	return s.profileRepo.DeleteByPublicCode(code)
}

func applyContactPatch(profile *models.Profile, patch ContactPatch) {
	if patch.OwnerName != nil {
		profile.OwnerName = strings.TrimSpace(*patch.OwnerName)
	}
	if patch.Phone != nil {
		profile.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		profile.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Whatsapp != nil {
		profile.Whatsapp = strings.TrimSpace(*patch.Whatsapp)
	}
	if patch.Address != nil {
		profile.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Note != nil {
		profile.Note = strings.TrimSpace(*patch.Note)
	}
	if patch.PhotoURL != nil {
		profile.PhotoURL = strings.TrimSpace(*patch.PhotoURL)
	}
}

func (s *ProfileService) generatePublicCode() (string, error) {
	for attempt := 0; attempt < publicCodeMaxAttempts; attempt++ {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		code := raw[:publicCodeLength]
		existing, err := s.profileRepo.GetByPublicCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errors.New("生成公开访问码失败")
}
