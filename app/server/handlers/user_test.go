package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authTokenData struct {
	Token string `json:"token"`
	User  struct {
		ID       uint     `json:"id"`
		Email    string   `json:"email"`
		Nickname string   `json:"nickname"`
		Links    []string `json:"links"`
	} `json:"user"`
}

func TestUserSignupAndSignin(t *testing.T) {
	ts := newTestServer(t)

	rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signup", "",
		`{"email": "Alice@Example.com", "password": "correct horse", "nickname": "alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var signup authTokenData
	require.NoError(t, json.Unmarshal(res.Data, &signup))
	assert.Equal(t, "alice@example.com", signup.User.Email)
	assert.Equal(t, []string{}, signup.User.Links)
	assert.NotContains(t, rec.Body.String(), "password")

	jwtUser, err := ts.app.jwt.ParseUser(signup.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, jwtUser.ID)

	t.Run("duplicated email", func(t *testing.T) {
		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signup", "",
			`{"email": "alice@example.com", "password": "another one", "nickname": "alice2"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"email"}, res.Fields)
	})

	t.Run("invalid fields", func(t *testing.T) {
		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signup", "",
			`{"email": "not-an-email", "password": "short"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.ElementsMatch(t, []string{"email", "password", "nickname"}, res.Fields)
	})

	t.Run("long password", func(t *testing.T) {
		long := strings.Repeat("p", 200)
		rec, _ := ts.do(t, http.MethodPost, "/api/v1/users/signup", "",
			`{"email": "long@example.com", "password": "`+long+`", "nickname": "long"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec, _ = ts.do(t, http.MethodPost, "/api/v1/users/signin", "",
			`{"email": "long@example.com", "password": "`+long+`"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signup", "",
			`{"email": "huge@example.com", "password": "`+strings.Repeat("p", 257)+`", "nickname": "huge"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"password"}, res.Fields)
	})

	t.Run("signin", func(t *testing.T) {
		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signin", "",
			`{"email": "alice@example.com", "password": "correct horse"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var signin authTokenData
		require.NoError(t, json.Unmarshal(res.Data, &signin))
		assert.Equal(t, signup.User.ID, signin.User.ID)
		assert.NotEmpty(t, signin.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signin", "",
			`{"email": "alice@example.com", "password": "wrong horse"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid email or password", res.Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec, res := ts.do(t, http.MethodPost, "/api/v1/users/signin", "",
			`{"email": "bob@example.com", "password": "correct horse"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid email or password", res.Message)
	})
}

func TestUserStatus(t *testing.T) {
	ts := newTestServer(t)
	user, token := ts.addUser(t, "alice@example.com")

	rec, res := ts.do(t, http.MethodPost, "/api/v1/users/status", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &profile))
	assert.Equal(t, user.ID, profile.ID)

	rec, res = ts.do(t, http.MethodPost, "/api/v1/users/status", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "failed", res.Status)

	ghostToken, err := ts.app.issueToken(404)
	require.NoError(t, err)
	rec, res = ts.do(t, http.MethodPost, "/api/v1/users/status", ghostToken, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "user not found", res.Message)
}

func TestUserProfile(t *testing.T) {
	ts := newTestServer(t)
	user, token := ts.addUser(t, "alice@example.com")

	rec, res := ts.do(t, http.MethodPatch, "/api/v1/users/profile", token,
		`{"bio": "maker", "links": ["https://example.com/alice"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(res.Data), `"bio":"maker"`)

	stored := ts.store.users[user.ID]
	assert.Equal(t, "maker", stored.Bio)
	assert.Equal(t, "tester", stored.Nickname)
	assert.Equal(t, []string{"https://example.com/alice"}, []string(stored.Links))

	rec, res = ts.do(t, http.MethodGet, "/api/v1/users/profile", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(res.Data), `"links":["https://example.com/alice"]`)

	t.Run("invalid link", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodPatch, "/api/v1/users/profile", token, `{"links": ["not a url"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec, _ := ts.do(t, http.MethodGet, "/api/v1/users/profile", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
