package api

import (
	"log"
	"net/http"
	"time"
)

// loggedResponse records the status code and payload size a handler
// actually produced, since a permutation search can run long and the
// access log must show what the client ultimately received.
type loggedResponse struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *loggedResponse) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *loggedResponse) Write(b []byte) (int, error) {
	// Handlers that skip WriteHeader imply a 200.
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware emits one access-log line per request with the
// end-to-end duration, which for /plan includes every upstream
// routing call of the search.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lr := &loggedResponse{ResponseWriter: w}
		next.ServeHTTP(lr, r)

		log.Printf(
			"http: method=%s path=%s status=%d bytes=%d dur_ms=%d",
			r.Method, r.URL.RequestURI(), lr.status, lr.bytes,
			time.Since(start).Milliseconds(),
		)
	})
}
