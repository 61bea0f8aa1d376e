package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter, captures the status code and runs
// a hook right before the header is sent.
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers fn to run once before the first header write.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	rw.beforeWrite = fn
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	if rw.wrote {
		return
	}
	rw.wrote = true
	if rw.beforeWrite != nil {
		rw.beforeWrite(rw.ResponseWriter)
	}
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	if !rw.wrote {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards to the underlying writer when it supports flushing.
func (rw *ResponseRecorder) Flush() {
	if !rw.wrote {
		rw.WriteHeader(http.StatusOK)
	}
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController.
func (rw *ResponseRecorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

func (rw *ResponseRecorder) Status() int { return rw.status }

// Wrote reports whether the header has been sent.
func (rw *ResponseRecorder) Wrote() bool { return rw.wrote }
