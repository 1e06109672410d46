package repository

import "gorm.io/gorm"

const maxPageSize = 50

// applyPagination 应用分页参数。页码从 1 起，页大小超限时收敛到上限。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
