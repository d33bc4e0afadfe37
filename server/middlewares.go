package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Daskott/contactbook/colors"
	"github.com/Daskott/contactbook/server/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type RequestContextKey string

const (
	requestIDKey   = RequestContextKey("requestID")
	requestUserKey = RequestContextKey("requestUser")
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         http.StatusOK,
		}

		defer func() {
			logg.Infof("%v %v %v %v %v",
				r.Method,
				r.RequestURI,
				colors.Status(responseWriter.Status),
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))),
				colors.Blue(requestID(r)))
		}()

		next.ServeHTTP(responseWriter, r)
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         http.StatusOK,
		}

		next.ServeHTTP(responseWriter, r)

		route := "unmatched"
		if currentRoute := mux.CurrentRoute(r); currentRoute != nil {
			if template, err := currentRoute.GetPathTemplate(); err == nil {
				route = template
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(responseWriter.Status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// authMiddleware rejects requests without a valid token & stores the token's user in the request context
func (api *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, errMsg, err := api.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		if errMsg != "" {
			writeResponse(w, ErrorPayload{Error: errMsg}, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), requestUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

func requestUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(requestUserKey).(*models.User)
	return user
}
