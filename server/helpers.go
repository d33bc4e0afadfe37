package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Daskott/contactbook/utils"
	"github.com/gorilla/mux"
)

const MAX_BODY_BYTES = 1 << 20

var errMalformedBody = errors.New("malformed request body")

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad)
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	if err := json.NewEncoder(rw).Encode(payLoad); err != nil {
		logg.Errorf("writeResponse: %v", err)
	}
}

// writeInternalError logs 'err' & hides it from the client
func writeInternalError(rw http.ResponseWriter, r *http.Request, err error) {
	logg.Errorf("%v %v [%v]: %+v", r.Method, r.RequestURI, requestID(r), err)
	writeResponse(rw, ErrorPayload{Error: "internal server error"}, http.StatusInternalServerError)
}

// decodeBody decodes a JSON object body. An empty body decodes to an empty map.
func decodeBody(rw http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	data := map[string]interface{}{}

	decoder := json.NewDecoder(http.MaxBytesReader(rw, r.Body, MAX_BODY_BYTES))
	decoder.UseNumber()

	err := decoder.Decode(&data)
	if errors.Is(err, io.EOF) {
		return data, nil
	}
	if err != nil {
		return nil, errMalformedBody
	}
	if decoder.More() {
		return nil, errMalformedBody
	}
	if data == nil {
		data = map[string]interface{}{}
	}

	return data, nil
}

// contactID parses the {id} route variable
func contactID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageNumber parses the 'page' query param, a missing value means the first page
func pageNumber(r *http.Request) (int, bool) {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1, true
	}

	page, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return page, true
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("contactbook server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func shutdown(server *http.Server) {
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("contactbook server shutdown failed:%+s", err)
		return
	}

	logg.Infof("contactbook server stopped properly")
}

// configDirectory retrieves the directory to store contactbook data
func configDirectory(devMode bool) (string, error) {
	// Use 'contactbook' folder in home directory for prod
	configFolderName := "contactbook"
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	configDir := filepath.Join(rootDir, configFolderName)

	if err = utils.CreateDirIfNotExist(configDir); err != nil {
		return "", err
	}

	return configDir, nil
}
