package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"studentrecords/internal/model"
	"time"
)

// ImportResult summarises one CSV import.
type ImportResult struct {
	FileName string        `json:"file_name"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// ImportCSV appends the rows of a name,roll_number,marks CSV to the store.
// The first row is a header. Rows that fail to parse or validate, and rows
// whose roll number is taken, are skipped.
func (s *StudentService) ImportCSV(name string, r io.Reader) (ImportResult, error) {
	start := time.Now()
	res := ImportResult{FileName: filepath.Base(name)}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, fmt.Errorf("read header of %s: %w", res.FileName, err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			s.log.Warn("skipping unreadable csv row", "file", res.FileName, "line", line, "err", err)
			res.Skipped++
			continue
		}
		st, err := parseRow(record)
		if err == nil {
			err = s.AddStudent(st)
		}
		if err != nil {
			s.log.Warn("skipping csv row", "file", res.FileName, "line", line, "err", err)
			res.Skipped++
			continue
		}
		res.Imported++
	}

	res.Duration = time.Since(start)
	s.log.Info("csv import completed", "file", res.FileName, "imported", res.Imported, "skipped", res.Skipped, "took", res.Duration)
	return res, nil
}

// ImportCSVFile opens path on the service filesystem and imports it.
func (s *StudentService) ImportCSVFile(path string) (ImportResult, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return ImportResult{FileName: filepath.Base(path)}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.ImportCSV(path, f)
}

func parseRow(record []string) (model.Student, error) {
	if len(record) < 3 {
		return model.Student{}, fmt.Errorf("want 3 fields, got %d", len(record))
	}
	roll, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return model.Student{}, fmt.Errorf("roll number %q: %w", record[1], err)
	}
	marks, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return model.Student{}, fmt.Errorf("marks %q: %w", record[2], err)
	}
	return model.Student{Name: strings.TrimSpace(record[0]), RollNumber: roll, Marks: marks}, nil
}
