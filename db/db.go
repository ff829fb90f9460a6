package db

import (
	"time"

	"valentine/logging"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to MySQL when mysqlDSN is set and falls back to the SQLite file otherwise.
func Open(mysqlDSN, sqliteFile string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		dialector = mysql.Open(mysqlDSN)
	} else {
		dialector = sqlite.Open(sqliteFile)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger: logger.New(zapWriter{}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}
	if mysqlDSN == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Single writer for SQLite avoids "database is locked" under concurrent inserts
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logging.SLog.Warnf(format, args...)
}
