package repository

import (
	"errors"
	"time"

	"github.com/linkcard-next/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository 名片数据访问接口
type ProfileRepository interface {
	GetByPublicCode(code string) (*models.Profile, error)
	GetByTagNo(tagNo string) (*models.Profile, error)
	GetByCredentials(code, tagNo, pin string) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	DeleteByPublicCode(code string) error
	List(filter ProfileListFilter) ([]models.Profile, int64, error)
	BatchUpdateStatus(codes []string, status string) error
	BatchDelete(codes []string) error
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建名片仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetByPublicCode 根据公开访问码获取名片
func (r *GormProfileRepository) GetByPublicCode(code string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("public_code = ?", code).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByTagNo 根据标签编号获取名片
func (r *GormProfileRepository) GetByTagNo(tagNo string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("tag_no = ?", tagNo).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByCredentials 根据访问码 + 标签编号 + 口令三者同时匹配获取名片
func (r *GormProfileRepository) GetByCredentials(code, tagNo, pin string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.
		Where("public_code = ? AND tag_no = ? AND pin = ?", code, tagNo, pin).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create 创建名片
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update 更新名片
func (r *GormProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// DeleteByPublicCode 物理删除名片
func (r *GormProfileRepository) DeleteByPublicCode(code string) error {
	return r.db.Where("public_code = ?", code).Delete(&models.Profile{}).Error
}

// List 名片列表
func (r *GormProfileRepository) List(filter ProfileListFilter) ([]models.Profile, int64, error) {
	query := r.db.Model(&models.Profile{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(
			"tag_no LIKE ? OR owner_name LIKE ? OR phone LIKE ? OR email LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var profiles []models.Profile
	if err := query.Order("id DESC").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// BatchUpdateStatus 批量更新名片状态
// 不存在的访问码会被单条 UPDATE 语句静默跳过。
func (r *GormProfileRepository) BatchUpdateStatus(codes []string, status string) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.Model(&models.Profile{}).
		Where("public_code IN ?", codes).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// BatchDelete 批量物理删除名片
func (r *GormProfileRepository) BatchDelete(codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	return r.db.Where("public_code IN ?", codes).Delete(&models.Profile{}).Error
}
