package handler

import (
	"math"
	"net/http"
	"strconv"
	"studentrecords/internal/model"
	"studentrecords/internal/service"
)

type StatsHandler struct {
	studentService *service.StudentService
}

func NewStatsHandler(studentService *service.StudentService) *StatsHandler {
	return &StatsHandler{studentService: studentService}
}

// Average returns the mean marks of all students, or 404 when there are none.
func (h *StatsHandler) Average(w http.ResponseWriter, r *http.Request) {
	avg, err := h.studentService.Average()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"average": avg,
		"count":   h.studentService.Count(),
	})
}

// Classify reports PASS or FAIL for the marks query parameter.
func (h *StatsHandler) Classify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("marks")
	marks, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(marks) || marks < 0 || marks > 100 {
		writeError(w, badRequest("marks must be a number between 0 and 100", nil))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"marks":  marks,
		"status": model.Classify(marks),
	})
}
