package handler

import (
	"net/http"
	"studentrecords/internal/logger"
	"studentrecords/internal/service"
)

type UploadHandler struct {
	studentService *service.StudentService
}

func NewUploadHandler(studentService *service.StudentService) *UploadHandler {
	return &UploadHandler{studentService: studentService}
}

// UploadCSV imports every CSV sent in the "files" multipart field.
func (h *UploadHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(100 << 20) // 100MB
	if err != nil {
		writeError(w, badRequest("file too large or bad request", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, badRequest("no files uploaded", nil))
		return
	}

	log := logger.FromContext(r.Context())
	results := make([]service.ImportResult, 0, len(files))
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			log.Error("error opening upload", "file", fh.Filename, "err", err)
			continue
		}
		res, err := h.studentService.ImportCSV(fh.Filename, file)
		file.Close()
		if err != nil {
			log.Error("error importing upload", "file", fh.Filename, "err", err)
			continue
		}
		results = append(results, res)
	}

	response := map[string]interface{}{
		"message": "Files imported",
		"files":   results,
	}
	writeJSON(w, http.StatusOK, response)
}
