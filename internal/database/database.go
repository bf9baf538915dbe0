package database

import (
	"errors"
	"fmt"
	"studentrecords/internal/config"
	"studentrecords/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDisabled is returned by Open when no driver is configured.
var ErrDisabled = errors.New("database disabled: DB_DRIVER is not set")

// StudentRow is the students table. Position keeps the store order.
type StudentRow struct {
	RollNumber int    `gorm:"primaryKey;autoIncrement:false"`
	Name       string `gorm:"size:100;not null"`
	Marks      float64
	Position   int `gorm:"not null;index"`
}

func (StudentRow) TableName() string {
	return "students"
}

func FromStudent(s model.Student, pos int) StudentRow {
	return StudentRow{RollNumber: s.RollNumber, Name: s.Name, Marks: s.Marks, Position: pos}
}

func (r StudentRow) Student() model.Student {
	return model.Student{Name: r.Name, RollNumber: r.RollNumber, Marks: r.Marks}
}

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := "host=" + cfg.DBHost + " user=" + cfg.DBUser + " password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName + " port=" + cfg.DBPort + " sslmode=disable"
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	case "":
		return nil, ErrDisabled
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Open connects to the configured database and migrates the students table.
func Open(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.DBDriver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&StudentRow{}); err != nil {
		return fmt.Errorf("auto-migrate students table: %w", err)
	}
	return nil
}
