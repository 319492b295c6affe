// Package tenant keeps every query inside the caller's company.
package tenant

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope filters on company_id. Pass table when the query joins other tables
// that also carry a company_id column.
func Scope(companyID string, table ...string) func(db *gorm.DB) *gorm.DB {
	col := clause.Column{Name: "company_id"}
	if len(table) > 0 {
		col.Table = table[0]
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: col, Value: companyID})
	}
}
