package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/eduline/lms-server/auth"
	"github.com/eduline/lms-server/store"
)

type appFixture struct {
	app    *fiber.App
	db     *bun.DB
	tokens *auth.TokenService
	sender *recordingSender
}

func newTestApp(t *testing.T, opts ...auth.ControllerOption) *appFixture {
	t.Helper()
	db := newTestDB(t)

	users := store.NewUsers(db)
	credentials := store.NewCredentials(db)
	contexts := store.NewContexts(db)
	sender := &recordingSender{}

	tokens := auth.NewTokenService([]byte(testSigningKey), 30*time.Minute, "lms-server", nil)

	options := append([]auth.ControllerOption{
		auth.WithCookie("authToken", time.Hour, false),
	}, opts...)

	controller := auth.NewController(
		auth.NewRegisterUserHandler(users, credentials, contexts, sender, nil, nil),
		auth.NewLoginUserHandler(credentials, nil, tokens, nil),
		tokens,
		options...,
	)

	app := fiber.New()
	controller.RegisterRoutes(app)

	return &appFixture{app: app, db: db, tokens: tokens, sender: sender}
}

func (f *appFixture) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func authCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "authToken" {
			return c
		}
	}
	return nil
}

func registerPayload() map[string]string {
	return map[string]string{
		"name":     "Siva",
		"email":    "siva@example.com",
		"phone_no": "+911234567890",
		"password": "s3cret-password",
	}
}

func TestRegisterEndpointSuccess(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/register", registerPayload())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgRegistered, body["message"])
	assert.Equal(t, []string{"siva@example.com"}, f.sender.sent)
}

func TestRegisterEndpointMissingField(t *testing.T) {
	f := newTestApp(t)

	payload := registerPayload()
	delete(payload, "password")

	resp := f.postJSON(t, "/auth/register", payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgAllFieldsRequired, body["message"])
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.postJSON(t, "/auth/register", registerPayload())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgEmailExistsUser, body["message"])
}

func TestRegisterEndpointDeterministicIDs(t *testing.T) {
	f := newTestApp(t, auth.WithDeterministicIDs(true))

	resp := f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	stored, err := store.NewUsers(f.db).GetByEmail(context.Background(), "siva@example.com")
	require.NoError(t, err)

	want, err := hashid.NewUUID("siva@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, stored.ID)
}

func TestLoginEndpointSuccess(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.postJSON(t, "/auth/login", map[string]string{
		"email":    "siva@example.com",
		"password": "s3cret-password",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := authCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.NotEmpty(t, cookie.Value)
	assert.InDelta(t, int(time.Hour/time.Second), cookie.MaxAge, 5)

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgLoginSuccess, body["message"])
	require.NotEmpty(t, body["token"])
	assert.Equal(t, cookie.Value, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "siva@example.com", user["email"])
	// The credential row is echoed as is, hash included.
	assert.NotEmpty(t, user["password"])

	claims, err := f.tokens.Validate(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["user_id"], claims.UID)
}

func TestLoginEndpointFailuresShareOneMessage(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/register", registerPayload())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	unknown := f.postJSON(t, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, fiber.StatusOK, unknown.StatusCode)
	unknownBody := decodeBody(t, unknown)

	wrongPassword := f.postJSON(t, "/auth/login", map[string]string{
		"email":    "siva@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusOK, wrongPassword.StatusCode)
	wrongBody := decodeBody(t, wrongPassword)

	assert.Equal(t, auth.MsgInvalidCredentials, unknownBody["message"])
	assert.Equal(t, unknownBody["message"], wrongBody["message"])
	assert.Nil(t, unknownBody["token"])
	assert.Nil(t, authCookie(unknown))
}

func TestLoginEndpointMissingFields(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/login", map[string]string{"email": "siva@example.com"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgLoginFieldsRequired, body["message"])
}

func TestLogoutEndpointClearsCookie(t *testing.T) {
	f := newTestApp(t)

	resp := f.postJSON(t, "/auth/logout", map[string]string{})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := authCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Expires.Before(time.Now()))

	body := decodeBody(t, resp)
	assert.Equal(t, auth.MsgLoggedOut, body["message"])
}

func TestCheckTokenEndpoint(t *testing.T) {
	f := newTestApp(t)

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/auth/check-token", nil)
		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, auth.MsgNoToken, decodeBody(t, resp)["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/auth/check-token", nil)
		req.AddCookie(&http.Cookie{Name: "authToken", Value: "not-a-token"})
		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, auth.MsgInvalidToken, decodeBody(t, resp)["message"])
	})

	t.Run("expired token", func(t *testing.T) {
		expiredIssuer := auth.NewTokenService([]byte(testSigningKey), -time.Minute, "lms-server", nil)
		token, err := expiredIssuer.Generate(uuid.New())
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/auth/check-token", nil)
		req.AddCookie(&http.Cookie{Name: "authToken", Value: token})
		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, auth.MsgInvalidToken, decodeBody(t, resp)["message"])
	})

	t.Run("valid token", func(t *testing.T) {
		userID := uuid.New()
		token, err := f.tokens.Generate(userID)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/auth/check-token", nil)
		req.AddCookie(&http.Cookie{Name: "authToken", Value: token})
		resp, err := f.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, auth.MsgTokenValid, body["message"])
		assert.Equal(t, userID.String(), body["userId"])
	})
}
