package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"studentrecords/internal/logger"
	"studentrecords/internal/model"
	"studentrecords/internal/store"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

var (
	ErrInvalidRecord = errors.New("invalid student record")
	ErrNoDatabase    = errors.New("no database configured")
)

// StudentService guards a record store for the shell, the CLI and the HTTP
// API, and owns its persistence targets.
type StudentService struct {
	mu       sync.RWMutex
	store    *store.Store
	fs       afero.Fs
	dataFile string
	db       *gorm.DB
	validate *validator.Validate
	log      logger.Logger
}

type Option func(*StudentService)

func WithFs(fs afero.Fs) Option {
	return func(s *StudentService) { s.fs = fs }
}

func WithDB(db *gorm.DB) Option {
	return func(s *StudentService) { s.db = db }
}

func WithLogger(l logger.Logger) Option {
	return func(s *StudentService) { s.log = l }
}

// NewStudentService returns a service over an empty store. dataFile is the
// default target of Save and Load.
func NewStudentService(dataFile string, opts ...Option) *StudentService {
	s := &StudentService{
		store:    store.New(),
		fs:       afero.NewOsFs(),
		dataFile: dataFile,
		validate: model.NewValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.NewLogger(nil)
	}
	return s
}

func (s *StudentService) DataFile() string {
	return s.dataFile
}

func (s *StudentService) check(st *model.Student) error {
	st.Name = strings.TrimSpace(st.Name)
	if math.IsNaN(st.Marks) {
		return fmt.Errorf("%w: marks must be a number", ErrInvalidRecord)
	}
	if err := s.validate.Struct(st); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

func (s *StudentService) AddStudent(st model.Student) error {
	_, err := s.CreateStudent(st)
	return err
}

// CreateStudent adds st and returns the record as stored.
func (s *StudentService) CreateStudent(st model.Student) (model.Student, error) {
	if err := s.check(&st); err != nil {
		return model.Student{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Add(st); err != nil {
		s.log.Warn("add rejected", "roll", st.RollNumber, "err", err)
		return model.Student{}, err
	}
	s.log.Info("student added", "roll", st.RollNumber, "status", st.Status())
	return st, nil
}

func (s *StudentService) UpdateStudent(roll int, st model.Student) error {
	_, err := s.ModifyStudent(roll, st)
	return err
}

// ModifyStudent replaces the record with the given roll and returns the
// record as stored.
func (s *StudentService) ModifyStudent(roll int, st model.Student) (model.Student, error) {
	if err := s.check(&st); err != nil {
		return model.Student{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Update(roll, st); err != nil {
		s.log.Warn("update rejected", "roll", roll, "err", err)
		return model.Student{}, err
	}
	s.log.Info("student updated", "roll", roll, "new_roll", st.RollNumber)
	return st, nil
}

func (s *StudentService) RemoveStudent(roll int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(roll); err != nil {
		s.log.Warn("remove rejected", "roll", roll, "err", err)
		return err
	}
	s.log.Info("student removed", "roll", roll)
	return nil
}

func (s *StudentService) FindStudent(roll int) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.store.Find(roll)
	if !ok {
		return model.Student{}, fmt.Errorf("roll %d: %w", roll, store.ErrNotFound)
	}
	return st, nil
}

// ListStudents returns the records in store order, or a sorted copy when
// sortBy is set. The store itself is not reordered.
func (s *StudentService) ListStudents(sortBy, sortOrder string) ([]model.Student, error) {
	var (
		key store.SortKey
		dir store.Direction
		err error
	)
	if sortBy != "" || sortOrder != "" {
		if key, err = store.ParseSortKey(sortBy); err != nil {
			return nil, err
		}
		if dir, err = store.ParseDirection(sortOrder); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	students := s.store.List()
	s.mu.RUnlock()

	if key != "" {
		store.SortStudents(students, key, dir)
	}
	return students, nil
}

// SortStudents reorders the store in place.
func (s *StudentService) SortStudents(key store.SortKey, dir store.Direction) []model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Sort(key, dir)
	s.log.Debug("store sorted", "key", key, "direction", dir)
	return s.store.List()
}

func (s *StudentService) Average() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Average()
}

func (s *StudentService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Len()
}

func (s *StudentService) path(p string) string {
	if p == "" {
		return s.dataFile
	}
	return p
}

// Save writes all records to path, or to the default data file.
func (s *StudentService) Save(path string) (int, error) {
	path = s.path(path)
	s.mu.RLock()
	students := s.store.List()
	s.mu.RUnlock()

	if err := store.SaveFile(s.fs, path, students); err != nil {
		s.log.Error("save failed", "file", path, "err", err)
		return 0, err
	}
	s.log.Info("records saved", "file", path, "count", len(students))
	return len(students), nil
}

// Load replaces the store with the records in path, or in the default data
// file. A file whose count line is garbled empties the store. A file that
// cannot be opened leaves the store untouched. A read error part way through
// is treated like a truncated file: the records read before it are kept.
func (s *StudentService) Load(path string) (int, error) {
	path = s.path(path)
	records, err := store.LoadFile(s.fs, path)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err == nil:
	case errors.Is(err, store.ErrMalformedFile):
		s.store.Load(nil)
		s.log.Error("load failed", "file", path, "err", err)
		return 0, err
	case errors.Is(err, store.ErrFileOpen):
		s.log.Error("load failed", "file", path, "err", err)
		return 0, err
	default:
		s.log.Warn("load stopped early", "file", path, "loaded", len(records), "err", err)
	}
	if dropped := s.store.Load(records); dropped > 0 {
		s.log.Warn("duplicate roll numbers dropped", "file", path, "dropped", dropped)
	}
	s.log.Info("records loaded", "file", path, "count", s.store.Len())
	return s.store.Len(), nil
}
