package gormdb

import (
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell/blog-api/internal/core/ports"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matchAny restricts a query to rows where any of columns contains search.
// An empty search matches everything.
func matchAny(search string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(search) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = col + ` LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// page applies the newest-first ordering and the offset/limit window.
func page(q ports.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC").Offset(q.Offset).Limit(q.Limit)
	}
}
