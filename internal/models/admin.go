package models

import "time"

// Admin 管理员表
type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`           // 主键
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // 管理员邮箱
	PasswordHash string    `gorm:"not null" json:"-"`              // 密码哈希（不返回给前端）
	Role         string    `gorm:"not null;default:'admin'" json:"role"` // 角色
	CreatedAt    time.Time `gorm:"index" json:"created_at"`        // 创建时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
