package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/royalket/demo-file-merger/log"
	"github.com/royalket/demo-file-merger/middleware"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewTransactionID, requestLogger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/process", processFiles)
		r.Post("/preview", previewData)
	})
	r.Get("/_version", getVersion)
	r.Get("/_health", healthCheck)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.API.WithFields(logrus.Fields{
			"transaction_id": middleware.TransactionID(r.Context()),
			"method":         r.Method,
			"path":           r.URL.Path,
			"duration_ms":    time.Since(start).Milliseconds(),
		}).Info("request complete")
	})
}
