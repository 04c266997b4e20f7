package migrate

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/RaikyD/tailor-calendar/internal/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// journalDir holds the appointment_journal schema, one goose file per change.
const journalDir = "migrations"

//go:embed migrations/*.sql
var journalMigrations embed.FS

// gooseLog routes goose's progress lines into the service logger.
type gooseLog struct{}

func (gooseLog) Printf(format string, v ...interface{}) {
	logger.Info("journal migration", "msg", fmt.Sprintf(format, v...))
}

func (gooseLog) Fatalf(format string, v ...interface{}) {
	logger.Error("journal migration", fmt.Errorf(format, v...))
}

// Up brings the appointment journal schema to the latest version. It runs
// before the pool opens, over its own short-lived database/sql handle.
func Up(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open journal db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(journalMigrations)
	goose.SetLogger(gooseLog{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, journalDir); err != nil {
		return fmt.Errorf("journal migrations: %w", err)
	}

	if v, err := goose.GetDBVersion(db); err == nil {
		logger.Info("journal schema ready", "version", v)
	}
	return nil
}
