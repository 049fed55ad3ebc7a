package service

import (
	"testing"

	"perf_eval_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens a gorm handle over a sqlmock connection so service
// decisions that straddle a repository round-trip can be exercised without
// a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func userRow(id uint, name string, role model.UserRole, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "role", "is_active"}).
		AddRow(id, name, name+"@example.com", string(role), active)
}

func assignmentRow(id, evaluatorID, evaluateeID uint, active bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "evaluator_id", "evaluatee_id", "is_active"}).
		AddRow(id, evaluatorID, evaluateeID, active)
}

func emptyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func countRow(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count(*)"}).AddRow(n)
}
