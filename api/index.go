package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	once   sync.Once
	routes http.Handler
)

// Handler is the serverless entry point. The router is built on the first request and reused while the instance is warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		server, _ := di.InitializeService()
		routes = server.Handler()
	})

	routes.ServeHTTP(w, r)
}
