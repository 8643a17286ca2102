package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"closeouts/internal/app/server/config"
)

// MockMigrator мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

var testDB = config.DB{DatabaseURI: "postgres://localhost/closeouts", Migrations: "migrations"}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var gotSource, gotDB string
	engine := func(source, db string) (Migrator, error) {
		gotSource, gotDB = source, db
		return mockM, nil
	}

	err := NewMigration(testDB, engine).Up()

	assert.NoError(t, err)
	assert.Equal(t, "file://migrations", gotSource)
	assert.Equal(t, "postgres://localhost/closeouts", gotDB)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	assert.NoError(t, NewMigration(testDB, engine).Up())
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine := func(source, db string) (Migrator, error) {
		return nil, errors.New("engine crash")
	}

	err := NewMigration(testDB, engine).Up()

	assert.EqualError(t, err, "engine crash")
}

func TestMigration_Up_Failure(t *testing.T) {
	upErr := errors.New("syntax error at or near")
	mockM := new(MockMigrator)
	mockM.On("Up").Return(upErr)
	mockM.On("Close").Return(nil, nil)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration(testDB, engine).Up()

	assert.ErrorIs(t, err, upErr)
}

func TestMigration_Up_CloseError(t *testing.T) {
	dbErr := errors.New("connection already closed")
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, dbErr)

	engine := func(source, db string) (Migrator, error) {
		return mockM, nil
	}

	err := NewMigration(testDB, engine).Up()

	assert.ErrorIs(t, err, dbErr)
}
