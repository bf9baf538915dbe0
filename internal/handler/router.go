package handler

import (
	"io"
	"net/http"
	"studentrecords/internal/logger"
	"studentrecords/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint of the student API. Requests carry log in
// their context.
func NewRouter(studentService *service.StudentService, log logger.Logger) *mux.Router {
	studentHandler := NewStudentHandler(studentService)
	statsHandler := NewStatsHandler(studentService)
	uploadHandler := NewUploadHandler(studentService)
	persistHandler := NewPersistHandler(studentService)

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.ContextWithLogger(req.Context(), log)))
		})
	})

	r.HandleFunc("/students", studentHandler.ListStudents).Methods("GET")
	r.HandleFunc("/students", studentHandler.CreateStudent).Methods("POST")
	r.HandleFunc("/students/sort", studentHandler.SortStudents).Methods("POST")
	r.HandleFunc("/students/average", statsHandler.Average).Methods("GET")
	r.HandleFunc("/students/{roll:-?[0-9]+}", studentHandler.GetStudent).Methods("GET")
	r.HandleFunc("/students/{roll:-?[0-9]+}", studentHandler.UpdateStudent).Methods("PUT")
	r.HandleFunc("/students/{roll:-?[0-9]+}", studentHandler.DeleteStudent).Methods("DELETE")
	r.HandleFunc("/classify", statsHandler.Classify).Methods("GET")

	r.HandleFunc("/upload", uploadHandler.UploadCSV).Methods("POST")
	r.HandleFunc("/save", persistHandler.Save).Methods("POST")
	r.HandleFunc("/load", persistHandler.Load).Methods("POST")
	r.HandleFunc("/db/push", persistHandler.Push).Methods("POST")
	r.HandleFunc("/db/pull", persistHandler.Pull).Methods("POST")

	return r
}

// Wrap adds CORS for origin and an access log written to logOut.
func Wrap(h http.Handler, origin string, logOut io.Writer) http.Handler {
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	return handlers.CombinedLoggingHandler(logOut, h)
}
