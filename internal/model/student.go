package model

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PassMark is the lowest mark that still counts as a pass.
const PassMark = 40.0

// MaxNameLength is the longest name a record may hold.
const MaxNameLength = 99

type Student struct {
	Name       string  `json:"name" validate:"required,max=99,studentname"`
	RollNumber int     `json:"roll_number" validate:"gte=0"`
	Marks      float64 `json:"marks" validate:"gte=0,lte=100"`
}

// Status reports whether the student passed.
func (s Student) Status() Status {
	return Classify(s.Marks)
}

type Status string

const (
	Pass Status = "PASS"
	Fail Status = "FAIL"
)

func (s Status) String() string {
	return string(s)
}

// Classify maps marks to PASS or FAIL; the threshold is inclusive.
func Classify(marks float64) Status {
	if marks >= PassMark {
		return Pass
	}
	return Fail
}

var namePattern = regexp.MustCompile(`^[A-Za-z \-]+$`)

// ValidName reports whether name is non-empty and made of letters, spaces
// and hyphens only.
func ValidName(name string) bool {
	if strings.TrimSpace(name) == "" || len(name) > MaxNameLength {
		return false
	}
	return namePattern.MatchString(name)
}

// RegisterValidators adds the studentname tag to v.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("studentname", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
}

// NewValidator returns a validator ready for Student values.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}
