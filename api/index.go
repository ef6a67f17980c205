package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	hotelHTTP "hotel/transport/http"
	"net/http"
	"sync"
)

var (
	server *hotelHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The dependency graph is built on the first request and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
