package service

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"studentrecords/internal/database"
	"studentrecords/internal/logger"
	"studentrecords/internal/model"
	"studentrecords/internal/store"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestService(t *testing.T, opts ...Option) (*StudentService, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	opts = append([]Option{WithFs(fs), WithLogger(logger.Discard())}, opts...)
	return NewStudentService("students.txt", opts...), fs
}

func addAll(t *testing.T, s *StudentService, students ...model.Student) {
	t.Helper()
	for _, st := range students {
		require.NoError(t, s.AddStudent(st))
	}
}

var (
	alice = model.Student{Name: "Alice", RollNumber: 1, Marks: 85}
	bob   = model.Student{Name: "Bob", RollNumber: 2, Marks: 30}
	carol = model.Student{Name: "Carol", RollNumber: 3, Marks: 60}
)

func TestAddStudent(t *testing.T) {
	tests := []struct {
		name    string
		student model.Student
		wantErr error
	}{
		{"valid", model.Student{Name: "Dan", RollNumber: 4, Marks: 40}, nil},
		{"name is trimmed", model.Student{Name: "  Eve  ", RollNumber: 5, Marks: 40}, nil},
		{"duplicate roll", model.Student{Name: "Dan", RollNumber: 1, Marks: 40}, store.ErrDuplicateRoll},
		{"bad name", model.Student{Name: "D4n", RollNumber: 4, Marks: 40}, ErrInvalidRecord},
		{"negative roll", model.Student{Name: "Dan", RollNumber: -4, Marks: 40}, ErrInvalidRecord},
		{"marks above range", model.Student{Name: "Dan", RollNumber: 4, Marks: 101}, ErrInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)
			addAll(t, s, alice)

			err := s.AddStudent(tt.student)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, s.Count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, s.Count())
		})
	}

	t.Run("stored name is trimmed", func(t *testing.T) {
		s, _ := newTestService(t)
		addAll(t, s, model.Student{Name: " Eve ", RollNumber: 5, Marks: 40})
		got, err := s.FindStudent(5)
		require.NoError(t, err)
		assert.Equal(t, "Eve", got.Name)
	})
}

func TestCreateAndModifyReturnStoredRecord(t *testing.T) {
	s, _ := newTestService(t)

	got, err := s.CreateStudent(model.Student{Name: "  Dan ", RollNumber: 4, Marks: 40})
	require.NoError(t, err)
	assert.Equal(t, model.Student{Name: "Dan", RollNumber: 4, Marks: 40}, got)

	got, err = s.ModifyStudent(4, model.Student{Name: "Daniel  ", RollNumber: 5, Marks: 41})
	require.NoError(t, err)
	assert.Equal(t, model.Student{Name: "Daniel", RollNumber: 5, Marks: 41}, got)

	got, err = s.ModifyStudent(4, alice)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, model.Student{}, got)

	_, err = s.CreateStudent(model.Student{Name: "Nan", RollNumber: 6, Marks: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRejectedOperationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := NewStudentService("students.txt",
		WithFs(afero.NewMemMapFs()),
		WithLogger(logger.NewLogger(&logger.Config{Level: logger.WarnLevel, Output: &buf})))
	addAll(t, s, alice)

	assert.ErrorIs(t, s.AddStudent(alice), store.ErrDuplicateRoll)
	assert.ErrorIs(t, s.UpdateStudent(9, bob), store.ErrNotFound)
	assert.ErrorIs(t, s.RemoveStudent(9), store.ErrNotFound)

	out := buf.String()
	assert.Contains(t, out, "add rejected")
	assert.Contains(t, out, "update rejected")
	assert.Contains(t, out, "remove rejected")
}

func TestUpdateAndRemoveStudent(t *testing.T) {
	s, _ := newTestService(t)
	addAll(t, s, alice, bob, carol)

	require.NoError(t, s.UpdateStudent(2, model.Student{Name: "Robert", RollNumber: 2, Marks: 45}))
	assert.ErrorIs(t, s.UpdateStudent(2, model.Student{Name: "Robert", RollNumber: 3, Marks: 45}), store.ErrDuplicateRoll)
	assert.ErrorIs(t, s.UpdateStudent(9, alice), store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateStudent(2, model.Student{Name: "", RollNumber: 2}), ErrInvalidRecord)

	require.NoError(t, s.RemoveStudent(1))
	assert.ErrorIs(t, s.RemoveStudent(1), store.ErrNotFound)

	_, err := s.FindStudent(1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.ListStudents("", "")
	require.NoError(t, err)
	assert.Equal(t, []model.Student{{Name: "Robert", RollNumber: 2, Marks: 45}, carol}, list)
}

func TestListStudents(t *testing.T) {
	s, _ := newTestService(t)
	addAll(t, s, alice, bob, carol)

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      []model.Student
		wantErr   bool
	}{
		{"insertion order", "", "", []model.Student{alice, bob, carol}, false},
		{"marks descending", "marks", "desc", []model.Student{alice, carol, bob}, false},
		{"order only sorts by marks", "", "asc", []model.Student{bob, carol, alice}, false},
		{"by name", "name", "asc", []model.Student{alice, bob, carol}, false},
		{"bad key", "age", "asc", nil, true},
		{"bad order", "marks", "sideways", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListStudents(tt.sortBy, tt.sortOrder)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	unsorted, err := s.ListStudents("", "")
	require.NoError(t, err)
	assert.Equal(t, []model.Student{alice, bob, carol}, unsorted, "listing must not reorder the store")
}

func TestSortStudents(t *testing.T) {
	s, _ := newTestService(t)
	addAll(t, s, bob, alice)

	got := s.SortStudents(store.ByMarks, store.Descending)
	assert.Equal(t, []model.Student{alice, bob}, got)

	avg, err := s.Average()
	require.NoError(t, err)
	assert.InDelta(t, 57.5, avg, 1e-9)
}

func TestAverageEmpty(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Average()
	assert.ErrorIs(t, err, store.ErrEmptyStore)
}

func TestSaveAndLoad(t *testing.T) {
	t.Run("round trip into a fresh service", func(t *testing.T) {
		s, fs := newTestService(t)
		addAll(t, s, alice, bob)

		n, err := s.Save("")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		fresh := NewStudentService("students.txt", WithFs(fs), WithLogger(logger.Discard()))
		n, err = fresh.Load("")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		list, _ := fresh.ListStudents("", "")
		assert.Equal(t, []model.Student{alice, bob}, list)
	})

	t.Run("load replaces current contents", func(t *testing.T) {
		s, fs := newTestService(t)
		require.NoError(t, afero.WriteFile(fs, "other.txt", []byte("1\nCarol\n3\n60.000000\n"), 0o644))
		addAll(t, s, alice, bob)

		_, err := s.Load("other.txt")
		require.NoError(t, err)
		list, _ := s.ListStudents("", "")
		assert.Equal(t, []model.Student{carol}, list)
	})

	t.Run("missing file leaves store untouched", func(t *testing.T) {
		s, _ := newTestService(t)
		addAll(t, s, alice)

		_, err := s.Load("missing.txt")
		assert.ErrorIs(t, err, store.ErrFileOpen)
		assert.Equal(t, 1, s.Count())
	})

	t.Run("garbled count empties the store", func(t *testing.T) {
		s, fs := newTestService(t)
		require.NoError(t, afero.WriteFile(fs, "bad.txt", []byte("two\nAlice\n1\n85\n"), 0o644))
		addAll(t, s, alice)

		_, err := s.Load("bad.txt")
		assert.ErrorIs(t, err, store.ErrMalformedFile)
		assert.Equal(t, 0, s.Count())
	})

	t.Run("repeated roll numbers keep the first", func(t *testing.T) {
		s, fs := newTestService(t)
		data := "3\nAlice\n1\n85.0\nBob\n2\n30.0\nAgain\n1\n10.0\n"
		require.NoError(t, afero.WriteFile(fs, "students.txt", []byte(data), 0o644))

		n, err := s.Load("")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("read error keeps the records read before it", func(t *testing.T) {
		s, fs := newTestService(t)
		data := "2\nAlice\n1\n85.000000\n" + strings.Repeat("x", 70000) + "\n2\n30.000000\n"
		require.NoError(t, afero.WriteFile(fs, "long.txt", []byte(data), 0o644))
		addAll(t, s, carol)

		n, err := s.Load("long.txt")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		list, _ := s.ListStudents("", "")
		assert.Equal(t, []model.Student{alice}, list)
	})

	t.Run("save failure leaves store untouched", func(t *testing.T) {
		s := NewStudentService("students.txt", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())), WithLogger(logger.Discard()))
		addAll(t, s, alice)

		_, err := s.Save("")
		assert.ErrorIs(t, err, store.ErrFileOpen)
		assert.Equal(t, 1, s.Count())
	})
}
