package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/employee-directory/internal/config"
	"github.com/employee-directory/internal/query"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// connectAttempts - сколько раз пытаться подключиться, пока БД поднимается
	connectAttempts = 30

	// sqliteDriverName - драйвер mattn с зарегистрированными функциями справочника
	sqliteDriverName = "sqlite3_directory"
)

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(query.UnicodeLowerFunc, unicodeLower, true)
		},
	})
}

// unicodeLower приводит TEXT к нижнему регистру; NULL и другие типы не меняет
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// Connect открывает подключение к БД, повторяя попытки раз в секунду
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	for range connectAttempts {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil && sqlDB.Ping() == nil {
				return db, nil
			}
			err = dbErr
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}

// OpenSQLite открывает файл SQLite без повторов; нужен для локального режима и тестов
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqliteDialector(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqliteDialector(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDialector открывает файл через драйвер с функцией ulower;
// DSN включает внешние ключи и ожидание блокировки
func sqliteDialector(path string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: sqliteDriverName,
		DSN:        path + "?_foreign_keys=on&_busy_timeout=5000",
	})
}
