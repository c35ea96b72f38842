package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{NewInvalidPayload("bad"), KindValidation},
		{NewInvalidStatus(), KindValidation},
		{NewInvalidAmount("bad"), KindValidation},
		{NewInvalidField("admin_notes", "bad"), KindValidation},
		{NewNoChanges(), KindValidation},
		{NewUnauthorized("Unauthorized"), KindAuthentication},
		{NewForbidden("Forbidden"), KindAuthorization},
		{NewNotFound("Quote not found"), KindNotFound},
		{NewStorageError(errors.New("db down")), KindDependency},
		{NewNotificationFailed(errors.New("smtp")), KindDependency},
		{errors.New("boom"), KindUnexpected},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err), tc.err.Error())
	}
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestStorageErrorPassesMessageThrough(t *testing.T) {
	cause := errors.New(`duplicate key value violates unique constraint "quotes_pkey"`)
	de := ToDomainError(NewStorageError(cause))

	assert.Equal(t, cause.Error(), de.Message)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
}

func TestToDomainErrorFromFiber(t *testing.T) {
	de := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)

	de = ToDomainError(fiber.NewError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"))
	assert.Equal(t, CodeInvalidPayload, de.Code)
}

func TestMapErrorNil(t *testing.T) {
	require.NoError(t, MapError(nil))
	assert.Equal(t, "", CodeOf(nil))
}
