package store

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"studentrecords/internal/model"

	"github.com/spf13/afero"
)

// The data file is line oriented: a record count, then three lines per
// record holding the name, the roll number and the marks.

// Encode writes records in the data file format.
func Encode(w io.Writer, records []model.Student) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", len(records))
	for _, st := range records {
		fmt.Fprintf(bw, "%s\n%d\n%f\n", st.Name, st.RollNumber, st.Marks)
	}
	return bw.Flush()
}

// Decode reads records in the data file format. A count line that is not a
// number yields ErrMalformedFile and no records. A file holding fewer
// records than its count declares is not an error: the records read up to
// that point are returned.
func Decode(r io.Reader) ([]model.Student, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("missing record count: %w", ErrMalformedFile)
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("record count %q: %w", sc.Text(), ErrMalformedFile)
	}
	if count < 0 {
		count = 0
	}

	records := make([]model.Student, 0, min(count, 1024))
	for len(records) < count {
		st, ok := decodeRecord(sc)
		if !ok {
			break
		}
		records = append(records, st)
	}
	if err := sc.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func decodeRecord(sc *bufio.Scanner) (model.Student, bool) {
	var st model.Student
	if !sc.Scan() {
		return st, false
	}
	st.Name = strings.TrimSpace(sc.Text())
	if !sc.Scan() {
		return st, false
	}
	roll, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return st, false
	}
	st.RollNumber = roll
	if !sc.Scan() {
		return st, false
	}
	marks, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
	if err != nil || math.IsNaN(marks) {
		return st, false
	}
	st.Marks = marks
	return st, true
}

// SaveFile overwrites path with records.
func SaveFile(fs afero.Fs, path string, records []model.Student) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w %s for writing: %v", ErrFileOpen, path, err)
	}
	if err := Encode(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile reads the records stored at path.
func LoadFile(fs afero.Fs, path string) ([]model.Student, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s for reading: %v", ErrFileOpen, path, err)
	}
	defer f.Close()
	records, err := Decode(f)
	if err != nil {
		return records, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
