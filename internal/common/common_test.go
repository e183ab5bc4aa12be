package common

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 1718000000000 ", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1718000000000), id)

	for _, bad := range []string{"", "abc", "0", "-4", "1.5"} {
		_, err := ParseID(bad, "id")
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalInt(t *testing.T) {
	n, err := ParseOptionalInt("", "recent", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = ParseOptionalInt("3", "recent", 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ParseOptionalInt("many", "recent", 5)
	assert.EqualError(t, err, "recent must be an integer")
}

func TestSendConflictError_Envelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	require.NoError(t, SendConflictError(c, "insufficient stock"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "insufficient stock", body.Error.Message)
}

func TestSessionContext(t *testing.T) {
	_, _, ok := GetSessionFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), "abc", "manager")
	id, user, ok := GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, "manager", user)
}
