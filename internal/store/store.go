// Package store holds the ordered, in-memory collection of student records
// and its flat-file format.
package store

import (
	"fmt"
	"sort"
	"studentrecords/internal/model"
)

type SortKey string

const (
	ByMarks SortKey = "marks"
	ByRoll  SortKey = "roll_number"
	ByName  SortKey = "name"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortKey accepts the API/CLI spelling of a sort key. An empty string
// means ByMarks.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", ByMarks:
		return ByMarks, nil
	case ByRoll, "roll":
		return ByRoll, nil
	case ByName:
		return ByName, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// ParseDirection accepts asc/desc and their long forms. An empty string
// means Ascending.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Store is an ordered collection of students with unique roll numbers.
// It is not safe for concurrent use.
type Store struct {
	students []model.Student
}

func New() *Store {
	return &Store{}
}

func (s *Store) Len() int {
	return len(s.students)
}

func (s *Store) indexOf(roll int) int {
	for i := range s.students {
		if s.students[i].RollNumber == roll {
			return i
		}
	}
	return -1
}

// Add appends st unless its roll number is already taken.
func (s *Store) Add(st model.Student) error {
	if s.indexOf(st.RollNumber) >= 0 {
		return fmt.Errorf("add roll %d: %w", st.RollNumber, ErrDuplicateRoll)
	}
	s.students = append(s.students, st)
	return nil
}

// Update replaces the record with the given roll number. A changed roll
// number must not collide with any other record.
func (s *Store) Update(roll int, st model.Student) error {
	idx := s.indexOf(roll)
	if idx < 0 {
		return fmt.Errorf("update roll %d: %w", roll, ErrNotFound)
	}
	if st.RollNumber != roll {
		if other := s.indexOf(st.RollNumber); other >= 0 && other != idx {
			return fmt.Errorf("update roll %d to %d: %w", roll, st.RollNumber, ErrDuplicateRoll)
		}
	}
	s.students[idx] = st
	return nil
}

// Remove deletes the record and shifts the following ones left, keeping
// their order.
func (s *Store) Remove(roll int) error {
	idx := s.indexOf(roll)
	if idx < 0 {
		return fmt.Errorf("remove roll %d: %w", roll, ErrNotFound)
	}
	copy(s.students[idx:], s.students[idx+1:])
	s.students[len(s.students)-1] = model.Student{}
	s.students = s.students[:len(s.students)-1]
	return nil
}

func (s *Store) Find(roll int) (model.Student, bool) {
	idx := s.indexOf(roll)
	if idx < 0 {
		return model.Student{}, false
	}
	return s.students[idx], true
}

// List returns a copy of the records in their current order.
func (s *Store) List() []model.Student {
	out := make([]model.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Sort reorders the store in place. Records that compare equal keep their
// relative order.
func (s *Store) Sort(key SortKey, dir Direction) {
	SortStudents(s.students, key, dir)
}

// SortStudents stably sorts records by key in the given direction.
func SortStudents(records []model.Student, key SortKey, dir Direction) {
	less := lessFunc(records, key)
	if dir == Descending {
		sort.SliceStable(records, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(records, less)
}

func lessFunc(records []model.Student, key SortKey) func(i, j int) bool {
	switch key {
	case ByRoll:
		return func(i, j int) bool { return records[i].RollNumber < records[j].RollNumber }
	case ByName:
		return func(i, j int) bool { return records[i].Name < records[j].Name }
	default:
		return func(i, j int) bool { return records[i].Marks < records[j].Marks }
	}
}

// Average returns the mean marks, or ErrEmptyStore.
func (s *Store) Average() (float64, error) {
	if len(s.students) == 0 {
		return 0, ErrEmptyStore
	}
	var sum float64
	for _, st := range s.students {
		sum += st.Marks
	}
	return sum / float64(len(s.students)), nil
}

// Replace swaps the whole contents for records. Nothing changes if records
// repeat a roll number.
func (s *Store) Replace(records []model.Student) error {
	seen := make(map[int]struct{}, len(records))
	for _, st := range records {
		if _, ok := seen[st.RollNumber]; ok {
			return fmt.Errorf("replace roll %d: %w", st.RollNumber, ErrDuplicateRoll)
		}
		seen[st.RollNumber] = struct{}{}
	}
	out := make([]model.Student, len(records))
	copy(out, records)
	s.students = out
	return nil
}

// Load replaces the contents with records, keeping the first record seen
// for each roll number. It returns the number of records dropped.
func (s *Store) Load(records []model.Student) int {
	unique := Dedupe(records)
	s.students = unique
	return len(records) - len(unique)
}

// Dedupe returns a new slice holding the first record for each roll number.
func Dedupe(records []model.Student) []model.Student {
	seen := make(map[int]struct{}, len(records))
	out := make([]model.Student, 0, len(records))
	for _, st := range records {
		if _, ok := seen[st.RollNumber]; ok {
			continue
		}
		seen[st.RollNumber] = struct{}{}
		out = append(out, st)
	}
	return out
}
