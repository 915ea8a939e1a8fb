// Package testutil builds throwaway stores for tests.
package testutil

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/staff-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/staff-manager/internal/db"
	"github.com/BruksfildServices01/staff-manager/internal/infra/repository"
)

// NewSQLite returns a migrated, private in-memory database.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := dbpkg.NewDB(&config.Config{
		DBDriver: "sqlite",
		DBUrl:    ":memory:",
		GinMode:  "test",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Logger = logger.Discard

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NewRepo(t testing.TB) *repository.StaffGormRepository {
	t.Helper()
	return repository.NewStaffGormRepository(NewSQLite(t))
}

// PlainHasher stores passwords verbatim so tests skip bcrypt's cost.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (PlainHasher) Compare(digest, password string) bool {
	return digest != "" && digest == "plain:"+password
}
