package server

import (
	"errors"
	"net/http"

	"github.com/Daskott/contactbook/server/auth/key"
	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/server/validation"
	"gorm.io/gorm"
)

type ErrorPayload struct {
	Error string `json:"error"`
}

type SuccessPayload struct {
	Success bool `json:"success"`
}

type AuthPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type ContactPagePayload struct {
	CurrentPage   int64                          `json:"current_page"`
	NextPage      *int64                         `json:"next_page"`
	PreviousPage  *int64                         `json:"previous_page"`
	TotalPage     int64                          `json:"total_page"`
	TotalContacts int64                          `json:"total_contacts"`
	Contacts      []models.ContactRepresentation `json:"contacts"`
}

var (
	notFoundPayload     = ErrorPayload{Error: "Not Found"}
	pageNotFoundPayload = ErrorPayload{Error: "Page Not Found"}
)

func (api *API) register(rw http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(rw, r)
	if err != nil {
		writeResponse(rw, ErrorPayload{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	values, errs := validation.RegisterSchema.Validate(data)
	if errs == nil {
		errs = validation.Errors{}
	}

	// duplicate emails are reported alongside any password error, CreateUser
	// still rejects an email registered in between
	if _, emailInvalid := errs["email"]; !emailInvalid {
		_, err = models.FindUserBy("email", values["email"])
		if err == nil {
			errs.Add("email", "Email already registered.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			writeInternalError(rw, r, err)
			return
		}
	}

	if len(errs) > 0 {
		writeResponse(rw, errs, http.StatusBadRequest)
		return
	}

	user := models.User{Email: values["email"], Password: values["password"]}
	err = models.CreateUser(&user)
	if errors.Is(err, models.ErrDuplicateIdentity) {
		writeResponse(rw, validation.Errors{"email": {"Email already registered."}}, http.StatusBadRequest)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	token, err := api.issueToken(&user)
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	writeResponse(rw, AuthPayload{Email: user.Email, Token: token}, http.StatusCreated)
}

func (api *API) logIn(rw http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(rw, r)
	if err != nil {
		writeResponse(rw, ErrorPayload{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	values, errs := validation.LoginSchema.Validate(data)
	if errs != nil {
		writeResponse(rw, errs, http.StatusBadRequest)
		return
	}

	user, err := models.FindUserByCredentials(values["email"], values["password"])
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeResponse(rw, validation.Errors{"email": {"Email and password doesn't match."}}, http.StatusBadRequest)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	token, err := api.issueToken(user)
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	writeResponse(rw, AuthPayload{Email: user.Email, Token: token}, http.StatusOK)
}

func (api *API) listContacts(rw http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	// a filtered listing is always the first page
	page := 1
	if email == "" {
		var ok bool
		if page, ok = pageNumber(r); !ok {
			writeResponse(rw, pageNotFoundPayload, http.StatusNotFound)
			return
		}
	}

	contacts, paging, err := requestUser(r).FetchContacts(email, page)
	if errors.Is(err, models.ErrPageNotFound) {
		writeResponse(rw, pageNotFoundPayload, http.StatusNotFound)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	writeResponse(rw, ContactPagePayload{
		CurrentPage:   paging.Page,
		NextPage:      paging.NextPage(),
		PreviousPage:  paging.PreviousPage(),
		TotalPage:     paging.Pages,
		TotalContacts: paging.Total,
		Contacts:      models.ContactRepresentations(contacts),
	}, http.StatusOK)
}

func (api *API) createContact(rw http.ResponseWriter, r *http.Request) {
	data, err := decodeBody(rw, r)
	if err != nil {
		writeResponse(rw, ErrorPayload{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	values, errs := validation.FullContactSchema.Validate(data)
	if errs != nil {
		writeResponse(rw, errs, http.StatusBadRequest)
		return
	}

	person, err := requestUser(r).CreateContact(validation.ContactFields(values))
	if errors.Is(err, models.ErrDuplicateContact) {
		writeResponse(rw, validation.Errors{"email": {"Contact already exists."}}, http.StatusBadRequest)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}
	contactOperationsTotal.WithLabelValues("create").Inc()

	writeResponse(rw, person.Representation(), http.StatusCreated)
}

func (api *API) findContact(rw http.ResponseWriter, r *http.Request) {
	person, ok := api.ownedContact(rw, r)
	if !ok {
		return
	}

	writeResponse(rw, person.Representation(), http.StatusOK)
}

func (api *API) updateContact(rw http.ResponseWriter, r *http.Request) {
	person, ok := api.ownedContact(rw, r)
	if !ok {
		return
	}

	data, err := decodeBody(rw, r)
	if err != nil {
		writeResponse(rw, ErrorPayload{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	values, errs := validation.FullContactSchema.Validate(data)
	if errs != nil {
		writeResponse(rw, errs, http.StatusBadRequest)
		return
	}

	person, err = requestUser(r).UpdateContact(person.ID, validation.ContactFields(values))
	if errors.Is(err, models.ErrDuplicateContact) {
		writeResponse(rw, validation.Errors{"email": {"Contact already exists."}}, http.StatusBadRequest)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}
	contactOperationsTotal.WithLabelValues("update").Inc()

	writeResponse(rw, person.Representation(), http.StatusOK)
}

func (api *API) patchContact(rw http.ResponseWriter, r *http.Request) {
	person, ok := api.ownedContact(rw, r)
	if !ok {
		return
	}

	data, err := decodeBody(rw, r)
	if err != nil {
		writeResponse(rw, ErrorPayload{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	values, errs := validation.PartialContactSchema.Validate(data)
	if errs != nil {
		writeResponse(rw, errs, http.StatusBadRequest)
		return
	}

	person, err = requestUser(r).PatchContact(person.ID, values)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}
	contactOperationsTotal.WithLabelValues("patch").Inc()

	writeResponse(rw, person.Representation(), http.StatusOK)
}

func (api *API) deleteContact(rw http.ResponseWriter, r *http.Request) {
	id, ok := contactID(r)
	if !ok {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return
	}

	err := requestUser(r).DeleteContact(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}
	contactOperationsTotal.WithLabelValues("delete").Inc()

	writeResponse(rw, SuccessPayload{Success: true}, http.StatusOK)
}

func (api *API) jwks(rw http.ResponseWriter, r *http.Request) {
	publicJWK, err := api.keyPair.JWK()
	if err != nil {
		writeInternalError(rw, r, err)
		return
	}

	writeResponse(rw, key.ExportJWKAsJWKS(publicJWK), http.StatusOK)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// ownedContact loads the {id} contact of the request user, writing a 404 when it can't be seen
func (api *API) ownedContact(rw http.ResponseWriter, r *http.Request) (*models.Person, bool) {
	id, ok := contactID(r)
	if !ok {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return nil, false
	}

	person, err := requestUser(r).FindContact(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeResponse(rw, notFoundPayload, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		writeInternalError(rw, r, err)
		return nil, false
	}

	return person, true
}
