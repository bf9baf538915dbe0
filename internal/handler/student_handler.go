package handler

import (
	"encoding/json"
	"net/http"
	"studentrecords/internal/model"
	"studentrecords/internal/service"
	"studentrecords/internal/store"
)

type StudentHandler struct {
	studentService *service.StudentService
}

func NewStudentHandler(studentService *service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	students, err := h.studentService.ListStudents(query.Get("sort_by"), query.Get("sort_order"))
	if err != nil {
		writeError(w, badRequest("invalid sort", err))
		return
	}

	response := map[string]interface{}{
		"data":  students,
		"total": len(students),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	roll, err := rollVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	student, err := h.studentService.FindStudent(roll)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, studentView(student))
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var student model.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeError(w, badRequest("invalid JSON body", err))
		return
	}
	stored, err := h.studentService.CreateStudent(student)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, studentView(stored))
}

func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	roll, err := rollVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var student model.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		writeError(w, badRequest("invalid JSON body", err))
		return
	}
	stored, err := h.studentService.ModifyStudent(roll, student)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, studentView(stored))
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	roll, err := rollVar(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.studentService.RemoveStudent(roll); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SortStudents reorders the store itself, unlike the sort_by query of
// ListStudents.
func (h *StudentHandler) SortStudents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	key, err := store.ParseSortKey(query.Get("sort_by"))
	if err != nil {
		writeError(w, badRequest("invalid sort", err))
		return
	}
	dir, err := store.ParseDirection(query.Get("sort_order"))
	if err != nil {
		writeError(w, badRequest("invalid sort", err))
		return
	}
	students := h.studentService.SortStudents(key, dir)
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": students, "total": len(students)})
}

type studentResponse struct {
	model.Student
	Status model.Status `json:"status"`
}

func studentView(s model.Student) studentResponse {
	return studentResponse{Student: s, Status: s.Status()}
}
