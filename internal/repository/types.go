package repository

// ProfileListFilter 查询名片列表的过滤条件
type ProfileListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}
