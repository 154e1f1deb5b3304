package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Dialect определяет, какими SQL-конструкциями строятся условия
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectOf возвращает диалект подключения GORM
func DialectOf(db *gorm.DB) Dialect {
	if db != nil && db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return DialectPostgres
	}
	return DialectSQLite
}

// SupportsRowLocks сообщает, поддерживает ли диалект SELECT ... FOR UPDATE
func (d Dialect) SupportsRowLocks() bool {
	return d == DialectPostgres
}

// UnicodeLowerFunc - SQL-функция SQLite, приводящая текст к нижнему регистру
// с учётом Unicode; регистрируется при открытии подключения
const UnicodeLowerFunc = "ulower"

// containsExpr - регистронезависимый поиск подстроки
func (d Dialect) containsExpr(expr string) string {
	if d == DialectPostgres {
		return expr + ` ILIKE ? ESCAPE '\'`
	}
	// встроенный LIKE SQLite сравнивает без учёта регистра только ASCII
	return fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(?) ESCAPE '\'`, UnicodeLowerFunc, expr)
}

// datePartExpr извлекает год, месяц или день из даты как целое число
func (d Dialect) datePartExpr(part, column string) string {
	if d == DialectPostgres {
		return fmt.Sprintf("EXTRACT(%s FROM %s)", strings.ToUpper(part), column)
	}
	format := map[string]string{"year": "%Y", "month": "%m", "day": "%d"}[part]
	return fmt.Sprintf("CAST(strftime('%s', %s) AS INTEGER)", format, column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern превращает пользовательский текст в шаблон LIKE без спецсимволов
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
