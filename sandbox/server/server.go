// Package server wires the sandbox routes, middleware and HTTP server.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ray-remotestate/padipos/models"
	"github.com/ray-remotestate/padipos/sandbox/handlers"
	"github.com/ray-remotestate/padipos/sandbox/middlewares"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

type Options struct {
	RateLimit int
	RateBurst int
}

func SetupRoutes(h *handlers.Handler, opts Options) *Server {
	router := mux.NewRouter()
	metrics := middlewares.NewMetrics()
	router.Use(metrics.Middleware)
	if opts.RateLimit > 0 {
		router.Use(middlewares.NewRateLimiter(opts.RateLimit, opts.RateBurst).Handler)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/uploads/{name}", h.ServeUpload).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/user/login", h.Login).Methods(http.MethodPost)

	authRoutes := api.NewRoute().Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware(h.Secret))

	authRoutes.HandleFunc("/user/edit/profile", h.EditProfile).Methods(http.MethodPatch)
	authRoutes.HandleFunc("/user/remove/profile-pic", h.RemoveProfilePicture).Methods(http.MethodDelete)
	authRoutes.HandleFunc("/product/get-products", h.ListProducts).Methods(http.MethodGet)
	authRoutes.HandleFunc("/order/create", h.CreateOrder).Methods(http.MethodPost)
	authRoutes.HandleFunc("/order/get-id-order/{id}", h.GetOrder).Methods(http.MethodGet)

	// admin only
	admin := middlewares.RoleBasedMiddleware(models.RoleAdmin)
	adminRoute := func(path string, fn http.HandlerFunc, method string) {
		authRoutes.Handle(path, admin(fn)).Methods(method)
	}

	adminRoute("/user/get-users", h.ListUsers, http.MethodGet)
	adminRoute("/user/create", h.CreateUser, http.MethodPost)
	adminRoute("/user/get-user/{id}", h.GetUser, http.MethodGet)
	adminRoute("/user/update/{id}", h.UpdateUser, http.MethodPatch)
	adminRoute("/user/delete/{id}", h.DeleteUser, http.MethodDelete)

	adminRoute("/product/create", h.CreateProduct, http.MethodPost)
	adminRoute("/product/edit-product/{id}", h.EditProduct, http.MethodPatch)
	adminRoute("/product/delete/{id}", h.DeleteProduct, http.MethodDelete)

	adminRoute("/order/get-all-orders", h.ListOrders, http.MethodGet)

	adminRoute("/dashboard/stats", h.Stats, http.MethodGet)
	adminRoute("/dashboard/top-products", h.TopProducts, http.MethodGet)
	adminRoute("/dashboard/daily-omzet", h.DailyOmzet, http.MethodGet)

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	if svr.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
