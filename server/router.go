package server

import (
	"net/http"
	"time"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// API holds what request handlers need to issue & verify tokens
type API struct {
	keyPair  *key.KeyPair
	tokenTTL time.Duration
}

func NewAPI(keyPair *key.KeyPair, tokenTTL time.Duration) *API {
	return &API{keyPair: keyPair, tokenTTL: tokenTTL}
}

// Router returns the HTTP handler for every contactbook route. An empty
// 'allowedOrigins' allows any origin.
func (api *API) Router(allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.Use(requestIDMiddleware, loggingMiddleware, metricsMiddleware)

	for _, path := range []string{"/register", "/register/"} {
		router.HandleFunc(path, api.register).Methods("POST")
	}
	for _, path := range []string{"/login", "/login/"} {
		router.HandleFunc(path, api.logIn).Methods("POST")
	}
	router.HandleFunc("/.well-known/jwks.json", api.jwks).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	contactRouter := router.PathPrefix("/contact").Subrouter()
	contactRouter.Use(api.authMiddleware)
	contactRouter.HandleFunc("", api.listContacts).Methods("GET")
	contactRouter.HandleFunc("/", api.listContacts).Methods("GET")
	contactRouter.HandleFunc("/create", api.createContact).Methods("POST")
	contactRouter.HandleFunc("/{id:[0-9]+}", api.findContact).Methods("GET")
	contactRouter.HandleFunc("/{id:[0-9]+}/update", api.updateContact).Methods("PUT")
	contactRouter.HandleFunc("/{id:[0-9]+}/basic-update", api.patchContact).Methods("PATCH")
	contactRouter.HandleFunc("/{id:[0-9]+}/delete", api.deleteContact).Methods("DELETE")

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", REQUEST_ID_HEADER},
		ExposedHeaders: []string{REQUEST_ID_HEADER},
		MaxAge:         300,
	}).Handler(router)
}

func notFound(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, notFoundPayload, http.StatusNotFound)
}

func methodNotAllowed(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, ErrorPayload{Error: "Method Not Allowed"}, http.StatusMethodNotAllowed)
}
