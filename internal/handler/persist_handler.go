package handler

import (
	"net/http"
	"path/filepath"
	"studentrecords/internal/service"
)

type PersistHandler struct {
	studentService *service.StudentService
}

func NewPersistHandler(studentService *service.StudentService) *PersistHandler {
	return &PersistHandler{studentService: studentService}
}

// fileParam returns the optional ?file= target. Only a bare file name is
// accepted so the API cannot write outside the data directory.
func (h *PersistHandler) fileParam(r *http.Request) (string, error) {
	name := r.URL.Query().Get("file")
	if name == "" {
		return "", nil
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return "", badRequest("file must be a plain file name", nil)
	}
	return filepath.Join(filepath.Dir(h.studentService.DataFile()), name), nil
}

func (h *PersistHandler) Save(w http.ResponseWriter, r *http.Request) {
	path, err := h.fileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.studentService.Save(path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": n})
}

func (h *PersistHandler) Load(w http.ResponseWriter, r *http.Request) {
	path, err := h.fileParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.studentService.Load(path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"loaded": n})
}

func (h *PersistHandler) Push(w http.ResponseWriter, r *http.Request) {
	n, err := h.studentService.PushToDB(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pushed": n})
}

func (h *PersistHandler) Pull(w http.ResponseWriter, r *http.Request) {
	n, err := h.studentService.PullFromDB(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pulled": n})
}
