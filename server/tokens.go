package server

import (
	"errors"
	"strings"
	"time"

	"github.com/Daskott/contactbook/server/auth"
	"github.com/Daskott/contactbook/server/models"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	NO_TOKEN_MSG      = "no token provided"
	INVALID_TOKEN_MSG = "invalid token provided"
)

var authSchemes = []string{"Bearer ", "Token "}

// issueToken returns the user's stored token while it still verifies, otherwise a freshly signed one
func (api *API) issueToken(user *models.User) (string, error) {
	stored, err := user.StoredToken()
	if err == nil {
		if _, err := auth.DecodeJWT(stored.Key, api.keyPair); err == nil {
			return stored.Key, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", pkgErrors.Wrap(err, "load stored token")
	}

	claims := auth.NewTokenClaims(user.ID, user.Email, api.tokenTTL)
	token, err := auth.EncodeJWT(claims, api.keyPair)
	if err != nil {
		return "", pkgErrors.Wrap(err, "sign token")
	}

	if err := user.SaveToken(token, claims.ExpiresAtTime()); err != nil {
		return "", err
	}
	issuedTokensTotal.Inc()

	return token, nil
}

// authenticate resolves the user behind an Authorization header value. A non-empty
// message means the request is unauthorized, an error means the lookup itself failed.
func (api *API) authenticate(authHeaderValue string) (*models.User, string, error) {
	tokenString := ""
	for _, scheme := range authSchemes {
		if strings.HasPrefix(authHeaderValue, scheme) {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeaderValue, scheme))
			break
		}
	}
	if tokenString == "" {
		return nil, NO_TOKEN_MSG, nil
	}

	claims, err := auth.DecodeJWT(tokenString, api.keyPair)
	if err != nil {
		return nil, INVALID_TOKEN_MSG, nil
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, INVALID_TOKEN_MSG, nil
	}

	// the token must still be the one on record for its user
	stored, err := models.FindToken(tokenString)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, INVALID_TOKEN_MSG, nil
	}
	if err != nil {
		return nil, "", pkgErrors.Wrap(err, "find token")
	}
	if stored.UserID != userID || stored.Expired(time.Now()) {
		return nil, INVALID_TOKEN_MSG, nil
	}

	user, err := models.FindUserBy("id", userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, INVALID_TOKEN_MSG, nil
	}
	if err != nil {
		return nil, "", pkgErrors.Wrap(err, "find user")
	}

	return user, "", nil
}
