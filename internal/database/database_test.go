package database

import (
	"path/filepath"
	"studentrecords/internal/config"
	"studentrecords/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("disabled without driver", func(t *testing.T) {
		_, err := Open(&config.Config{})
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(&config.Config{DBDriver: "oracle"})
		assert.Error(t, err)
	})

	t.Run("sqlite file", func(t *testing.T) {
		db, err := Open(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "students.db")})
		require.NoError(t, err)

		row := FromStudent(model.Student{Name: "Alice", RollNumber: 1, Marks: 85}, 0)
		require.NoError(t, db.Create(&row).Error)

		var found StudentRow
		require.NoError(t, db.First(&found, "roll_number = ?", 1).Error)
		assert.Equal(t, model.Student{Name: "Alice", RollNumber: 1, Marks: 85}, found.Student())
	})
}
