package constants

// 名片状态常量
const (
	ProfileStatusActive = "active"
	ProfileStatusBanned = "banned"
)

// 批量操作动作常量
const (
	BulkActionBan    = "ban"
	BulkActionUnban  = "unban"
	BulkActionDelete = "delete"
)

// 管理员角色常量
const (
	AdminRoleAdmin = "admin"
)
