package handler

import (
	"galpao/config"
	"galpao/di"
	"galpao/shared/logger"
	"net/http"
	"sync"

	transportHTTP "galpao/transport/http"
)

var (
	service *transportHTTP.HTTP
	once    sync.Once
)

// Handler is the serverless entry point. The dependency graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
