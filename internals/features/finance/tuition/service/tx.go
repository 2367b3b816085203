// file: internals/features/finance/tuition/service/tx.go
package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// withRowLock menambahkan FOR UPDATE di postgres. SQLite (dipakai test)
// tidak punya row lock dan sudah menserialkan writer, jadi di-skip.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
