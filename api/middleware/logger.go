// Package middleware provides HTTP middleware for the seqalign API.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/shenwei356/go-logging"
)

var log = logging.MustGetLogger("seqalign-server")

// Logger logs one line per request with status, size and elapsed time.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqID := chimiddleware.GetReqID(r.Context())
			if status >= http.StatusInternalServerError {
				log.Errorf("[%s] %s %s %d %dB %s", reqID, r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(t))
				return
			}
			log.Infof("[%s] %s %s %d %dB %s", reqID, r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(t))
		}()
		next.ServeHTTP(ww, r)
	})
}
