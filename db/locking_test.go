package db

import (
	"strings"
	"testing"

	"equiptrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres 下事务里的台账读必须带行锁，SQLite 下不能带
// （语法不支持，单写者也用不着）。DryRun 只生成 SQL，不需要真连库。
func TestLockForUpdateByDialect(t *testing.T) {
	pg, err := gorm.Open(postgres.Open("host=127.0.0.1 user=postgres dbname=equiptrack"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres dialector: %v", err)
	}
	stmt := lockForUpdate(pg).First(&models.LoanLog{}, "id = ?", "x").Statement
	if !strings.Contains(stmt.SQL.String(), "FOR UPDATE") {
		t.Fatalf("postgres query missing row lock: %s", stmt.SQL.String())
	}

	r := newTestRepo(t)
	dry := r.DB.Session(&gorm.Session{DryRun: true})
	stmt = lockForUpdate(dry).First(&models.LoanLog{}, "id = ?", "x").Statement
	if strings.Contains(stmt.SQL.String(), "FOR UPDATE") {
		t.Fatalf("sqlite query must not emit FOR UPDATE: %s", stmt.SQL.String())
	}
}
