package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	reminderdomain "github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"invalid credentials", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"expired session", authdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized"},
		{"disabled user", authdomain.ErrUserDisabled, http.StatusForbidden, "forbidden"},
		{"duplicate user", authdomain.ErrUserExists, http.StatusConflict, "conflict"},
		{"bad visit date", visitdomain.ErrInvalidVisitDate, http.StatusBadRequest, "validation_error"},
		{"missing record", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
		})
	}
}

// A request that escapes without its clinic tenant in context is treated as
// unauthenticated, whichever domain surfaced it.
func TestMapErrorMissingClinicScope(t *testing.T) {
	for _, err := range []error{
		clinicdomain.ErrInvalidClinic,
		ownerdomain.ErrInvalidClinic,
		petdomain.ErrInvalidClinic,
		visitdomain.ErrInvalidClinic,
		reminderdomain.ErrInvalidClinic,
	} {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthorized", payload.Type)
	}
}
