package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Регистрация драйвера PostgreSQL и файлового источника для migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"closeouts/internal/app/server/config"
)

// Migrator часть migrate.Migrate, нужная для наката схемы.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine фабрика мигратора. В тестах подменяется, чтобы не трогать ФС и БД.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	db     config.DB
	engine MigrationEngine
}

func NewMigration(db config.DB, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		db:     db,
		engine: engine,
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up накатывает все миграции. Отсутствие изменений ошибкой не считается,
// ошибки закрытия источника и БД присоединяются к результату.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+mg.db.Migrations, mg.db.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database: %w", dberr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
