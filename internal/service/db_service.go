package service

import (
	"context"
	"fmt"
	"studentrecords/internal/database"
	"studentrecords/internal/model"

	"gorm.io/gorm"
)

const batchSize = 1000

// PushToDB replaces every row of the students table with the current store
// contents in one transaction.
func (s *StudentService) PushToDB(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrNoDatabase
	}
	s.mu.RLock()
	students := s.store.List()
	s.mu.RUnlock()

	rows := make([]database.StudentRow, len(students))
	for i, st := range students {
		rows[i] = database.FromStudent(st, i)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&database.StudentRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, batchSize).Error
	})
	if err != nil {
		s.log.Error("push to database failed", "err", err)
		return 0, fmt.Errorf("push students: %w", err)
	}
	s.log.Info("records pushed to database", "count", len(rows))
	return len(rows), nil
}

// PullFromDB replaces the store with the rows of the students table, in the
// order they were pushed.
func (s *StudentService) PullFromDB(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrNoDatabase
	}
	var rows []database.StudentRow
	if err := s.db.WithContext(ctx).Order("position").Order("roll_number").Find(&rows).Error; err != nil {
		s.log.Error("pull from database failed", "err", err)
		return 0, fmt.Errorf("pull students: %w", err)
	}

	students := make([]model.Student, len(rows))
	for i, r := range rows {
		students[i] = r.Student()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Load(students)
	s.log.Info("records pulled from database", "count", s.store.Len())
	return s.store.Len(), nil
}
