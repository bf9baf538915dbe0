// Package shell is the interactive menu front end of the record store.
package shell

import (
	"errors"
	"fmt"
	"io"
	"math"
	"studentrecords/internal/model"
	"studentrecords/internal/render"
	"studentrecords/internal/service"
	"studentrecords/internal/store"
)

const (
	choiceExit = iota
	choiceAdd
	choiceModify
	choiceRemove
	choiceSearch
	choiceDisplay
	choiceSort
	choiceAverage
	choiceVerify
	choiceSave
	choiceLoad
)

const menu = `
===== STUDENT RECORD MENU =====
1. Add Student
2. Modify Student
3. Remove Student
4. Search Student
5. Display All Students
6. Sort Students
7. Calculate Average Marks
8. Verify Student Marks
9. Save to File
10. Load from File
0. Exit
`

type Shell struct {
	svc *service.StudentService
	in  *Input
	out io.Writer
}

func New(svc *service.StudentService, in io.Reader, out io.Writer) *Shell {
	return &Shell{svc: svc, in: NewInput(in, out), out: out}
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// Run greets the user and serves menu choices until exit or end of input.
func (sh *Shell) Run() error {
	if err := sh.greet(); err != nil {
		return ignoreEOF(err)
	}
	for {
		sh.printf("%s", menu)
		choice, err := sh.in.Int("\nEnter your choice: ", choiceExit, choiceLoad)
		if err != nil {
			if errors.Is(err, io.EOF) {
				sh.printf("\nExiting program... Goodbye!\n")
				return nil
			}
			return err
		}
		if choice == choiceExit {
			sh.printf("Exiting program... Goodbye!\n")
			return nil
		}
		if err := sh.dispatch(choice); err != nil {
			if errors.Is(err, io.EOF) {
				sh.printf("\nExiting program... Goodbye!\n")
				return nil
			}
			return err
		}
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (sh *Shell) greet() error {
	sh.printf("WELCOME TO THE STUDENT RECORD SYSTEM\n")
	name, err := sh.in.Line("Please enter your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "there"
	}
	sh.printf("\nHello, %s! Welcome to the Student Record System.\n", name)
	return nil
}

func (sh *Shell) dispatch(choice int) error {
	switch choice {
	case choiceAdd:
		return sh.add()
	case choiceModify:
		return sh.modify()
	case choiceRemove:
		return sh.remove()
	case choiceSearch:
		return sh.search()
	case choiceDisplay:
		sh.display()
	case choiceSort:
		return sh.sort()
	case choiceAverage:
		sh.average()
	case choiceVerify:
		return sh.verify()
	case choiceSave:
		sh.save()
	case choiceLoad:
		sh.load()
	}
	return nil
}

func (sh *Shell) readStudent(prefix string) (model.Student, error) {
	var st model.Student
	var err error
	if st.Name, err = sh.in.Name("Enter " + prefix + "Name: "); err != nil {
		return st, err
	}
	if st.RollNumber, err = sh.in.Int("Enter "+prefix+"Roll Number: ", 0, math.MaxInt32); err != nil {
		return st, err
	}
	if st.Marks, err = sh.in.Float("Enter "+prefix+"Marks (0-100): ", 0, 100); err != nil {
		return st, err
	}
	return st, nil
}

func (sh *Shell) readRoll(prompt string) (int, error) {
	return sh.in.Int(prompt, 0, math.MaxInt32)
}

func (sh *Shell) add() error {
	st, err := sh.readStudent("Student ")
	if err != nil {
		return err
	}
	if err := sh.svc.AddStudent(st); err != nil {
		sh.report(err, st.RollNumber)
		return nil
	}
	sh.printf("Status: %s\n", st.Status())
	sh.printf("Student added successfully!\n")
	return nil
}

func (sh *Shell) modify() error {
	roll, err := sh.readRoll("Enter roll number of student to modify: ")
	if err != nil {
		return err
	}
	if _, err := sh.svc.FindStudent(roll); err != nil {
		sh.report(err, roll)
		return nil
	}
	st, err := sh.readStudent("New ")
	if err != nil {
		return err
	}
	if err := sh.svc.UpdateStudent(roll, st); err != nil {
		sh.report(err, st.RollNumber)
		return nil
	}
	sh.printf("Record updated successfully!\n")
	return nil
}

func (sh *Shell) remove() error {
	roll, err := sh.readRoll("Enter roll number to remove: ")
	if err != nil {
		return err
	}
	if err := sh.svc.RemoveStudent(roll); err != nil {
		sh.report(err, roll)
		return nil
	}
	sh.printf("Student removed successfully!\n")
	return nil
}

func (sh *Shell) search() error {
	roll, err := sh.readRoll("Enter roll number to search: ")
	if err != nil {
		return err
	}
	st, err := sh.svc.FindStudent(roll)
	if err != nil {
		sh.report(err, roll)
		return nil
	}
	sh.printf("\n%s", render.Record(st))
	return nil
}

func (sh *Shell) display() {
	students, _ := sh.svc.ListStudents("", "")
	sh.printf("\n%s\n", render.Table(students))
}

func (sh *Shell) sort() error {
	if sh.svc.Count() == 0 {
		sh.printf("%s\n", render.NoRecords)
		return nil
	}
	sh.printf("1. Ascending\n2. Descending\n")
	order, err := sh.in.Int("Sort by marks: ", 1, 2)
	if err != nil {
		return err
	}
	dir := store.Ascending
	if order == 2 {
		dir = store.Descending
	}
	students := sh.svc.SortStudents(store.ByMarks, dir)
	sh.printf("Students sorted by marks.\n\n%s\n", render.Table(students))
	return nil
}

func (sh *Shell) average() {
	avg, err := sh.svc.Average()
	if err != nil {
		sh.report(err, 0)
		return
	}
	sh.printf("Average marks of %d students: %.2f\n", sh.svc.Count(), avg)
}

// verify asks for marks and reports the classification.
func (sh *Shell) verify() error {
	marks, err := sh.in.Float("Enter marks to verify (0-100): ", 0, 100)
	if err != nil {
		return err
	}
	sh.printf("Status: %s\n", model.Classify(marks))
	return nil
}

func (sh *Shell) save() {
	n, err := sh.svc.Save("")
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}
	sh.printf("Saved %d records to %s.\n", n, sh.svc.DataFile())
}

func (sh *Shell) load() {
	n, err := sh.svc.Load("")
	if err != nil {
		sh.printf("Error: %v\n", err)
		return
	}
	sh.printf("Loaded %d records from %s.\n", n, sh.svc.DataFile())
}

func (sh *Shell) report(err error, roll int) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		sh.printf("Student with roll number %d not found!\n", roll)
	case errors.Is(err, store.ErrDuplicateRoll):
		sh.printf("A student with roll number %d already exists!\n", roll)
	case errors.Is(err, store.ErrEmptyStore):
		sh.printf("%s\n", render.NoRecords)
	default:
		sh.printf("Error: %v\n", err)
	}
}
