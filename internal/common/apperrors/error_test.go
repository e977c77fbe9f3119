package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("TestError", func(t *testing.T) {
		ErrBaseErr := New("base error")
		assert.Equal(t, "base error", ErrBaseErr.Error())
		assert.Equal(t, "msg", ErrBaseErr.New("msg").Error())
		assert.ErrorIs(t, ErrBaseErr, ErrBaseErr)

		ErrFirstLevel := ErrBaseErr.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBaseErr)

		ErrAnotherErr := New("another error")
		ErrAnotherErrMsg := ErrAnotherErr.Msg("another error msg")
		ErrWrappedErr := ErrFirstLevel.Err(ErrAnotherErrMsg)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrFirstLevel)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErr)
		assert.ErrorIs(t, ErrWrappedErr, ErrAnotherErrMsg)

		err := fmt.Errorf("plain error")
		ErrWrappedErr = ErrFirstLevel.Err(err)
		assert.Equal(t, "first level", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)

		ErrWrappedErr = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", ErrWrappedErr.Error())
		assert.ErrorIs(t, ErrWrappedErr, ErrBaseErr)
		assert.ErrorIs(t, ErrWrappedErr, err)
	})
}

func TestErrorStatusAndKind(t *testing.T) {
	ErrNotFound := New("not found").SetStatusCode(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, ErrNotFound.StatusCode())
	assert.Equal(t, KindNotFound, ErrNotFound.Kind())

	// derived errors inherit both status code and kind
	derived := ErrNotFound.Msg("session 42 not found")
	assert.Equal(t, http.StatusNotFound, derived.StatusCode())
	assert.Equal(t, KindNotFound, derived.Kind())
	assert.ErrorIs(t, derived, ErrNotFound)

	// explicit kind wins over status-derived kind
	ErrLeave := New("not a participant").
		SetKind(KindNotFound).
		SetStatusCode(http.StatusBadRequest)
	assert.Equal(t, KindNotFound, ErrLeave.Kind())

	assert.Equal(t, KindNotFound, GetKind(derived))
	assert.Equal(t, KindUnknown, GetKind(fmt.Errorf("plain")))
	assert.Equal(t, KindUnknown, GetKind(nil))
}

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindUnauthorized},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
		{0, KindServer}, // transport failure, no status
		{http.StatusTeapot, KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindFromStatus(tt.status), "status %d", tt.status)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "unauthorized", KindUnauthorized.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "server", KindServer.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
