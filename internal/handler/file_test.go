package handler

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/social-network/internal/model"
)

func TestFileGet(t *testing.T) {
	e := newEnv(t)
	alice := e.seedUser(t, "Alice", "First", "alice@example.com")
	fileID, err := memUsers{e.db}.ReplaceAvatar(context.Background(), alice.ID, model.File{
		FileName:    "avatar.png",
		ContentType: "image/png",
		Content:     []byte("png-bytes"),
	})
	require.NoError(t, err)

	files := NewFileHandler(memFiles{e.db})

	c, rec := e.call(t, http.MethodGet, 0, nil, "fileId", strconv.FormatUint(fileID, 10))
	require.NoError(t, files.Get(c))
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("png-bytes"), rec.Body.Bytes())

	c, rec = e.call(t, http.MethodGet, 0, nil, "fileId", "999")
	require.NoError(t, files.Get(c))
	requireStatus(t, rec, http.StatusNotFound)
}
