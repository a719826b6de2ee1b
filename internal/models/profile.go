package models

import "time"

// Profile 联系名片表
// 说明：status 仅在 active / banned 之间切换；删除为物理删除，不保留软删除标记。
type Profile struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	TagNo      string    `gorm:"uniqueIndex;not null" json:"tag_no"`      // 标签编号（管理员分配）
	PIN        string    `gorm:"not null" json:"-"`                       // 5 位数字口令（不返回给前端）
	PublicCode string    `gorm:"uniqueIndex;not null" json:"public_code"` // 公开访问码（URL 安全）
	Status     string    `gorm:"not null;default:'active';index" json:"status"` // 状态
	OwnerName  string    `gorm:"default:''" json:"owner_name"`            // 联系人姓名
	Phone      string    `gorm:"default:''" json:"phone"`                 // 电话
	Email      string    `gorm:"default:''" json:"email"`                 // 邮箱
	Whatsapp   string    `gorm:"default:''" json:"whatsapp"`              // WhatsApp
	Address    string    `gorm:"default:''" json:"address"`               // 地址
	Note       string    `gorm:"default:''" json:"note"`                  // 备注
	PhotoURL   string    `gorm:"default:''" json:"photo_url"`             // 头像路径
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                 // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// IsBanned 判断名片是否被封禁
func (p *Profile) IsBanned() bool {
	return p != nil && p.Status == "banned"
}
