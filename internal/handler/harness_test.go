package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/social-network/internal/config"
	"github.com/iliyamo/social-network/internal/model"
)

// env bundles one in-memory backend with handlers wired the same way
// main() wires the real ones.
type env struct {
	db    *memDB
	auth  *AuthHandler
	users *UserHandler
	posts *PostHandler
	echo  *echo.Echo
}

func testCfg() config.Config {
	return config.Config{
		Env:          "test",
		JWTSecret:    "handler-test-secret",
		JWTIssuer:    "SocialNetwork.Issuer",
		JWTAudience:  "SocialNetwork.Audience",
		TokenTTLDays: 30,
	}
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newMemDB()
	cfg := testCfg()
	return &env{
		db:    db,
		auth:  NewAuthHandler(cfg, memUsers{db}),
		users: NewUserHandler(cfg, memUsers{db}, memGraph{db}, memPosts{db}, memFiles{db}),
		posts: NewPostHandler(memPosts{db}, memLedger{db}, nil),
		echo:  echo.New(),
	}
}

// seedUser registers a user directly against the store and returns it.
func (e *env) seedUser(t *testing.T, first, last, email string) model.User {
	t.Helper()
	u, err := memUsers{e.db}.Create(context.Background(), first, last, email, "Passw0rd!")
	require.NoError(t, err)
	return u
}

// call builds an echo context for a handler invocation.  body may be nil;
// uid 0 leaves the request unauthenticated.  Path params are given as
// alternating name, value pairs.
func (e *env) call(t *testing.T, method string, uid uint64, body any, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/", rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.echo.NewContext(req, rec)
	if uid != 0 {
		c.Set("user_id", uid)
	}
	require.Zero(t, len(params)%2, "params must come in name/value pairs")
	names := make([]string, 0, len(params)/2)
	values := make([]string, 0, len(params)/2)
	for i := 0; i < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

// decode unmarshals a recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
