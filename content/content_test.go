package content_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduline/lms-server/content"
)

// fakeKV is an in-memory stand-in for the Redis client.
type fakeKV struct {
	values map[string]string
	err    error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}}
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := content.NewStore(newFakeKV())

	val, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, store.Save(ctx, "<p>hello</p>"))

	val, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", val)

	require.NoError(t, store.Save(ctx, "<p>replaced</p>"))
	val, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>replaced</p>", val)
}

func TestStoreBackendDown(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	store := content.NewStore(kv)

	require.Error(t, store.Save(ctx, "x"))
	_, err := store.Get(ctx)
	require.Error(t, err)
}

func TestContentEndpoints(t *testing.T) {
	app := fiber.New()
	controller := content.NewController(content.NewStore(newFakeKV()))
	controller.RegisterRoutes(app)

	req := httptest.NewRequest(fiber.MethodPost, "/save", strings.NewReader(`{"content":"<h1>notes</h1>"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/content", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
