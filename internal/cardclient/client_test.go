package cardclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tango/internal/api"
	"github.com/abhisek/tango/internal/cards"
)

func newClient(t *testing.T, store cards.Store) *Client {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(store, api.Options{}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", 2*time.Second)
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, cards.NewMemoryStore())

	empty, err := c.FetchAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	created, err := c.Create(ctx, "やま", "mountain", "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = c.Create(ctx, "かわ", "river", "かわでおよぐ")
	require.NoError(t, err)

	all, err := c.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "やま", all[0].Term)
	assert.Equal(t, "かわでおよぐ", all[1].Note)
}

func TestCreate_ValidationError(t *testing.T) {
	c := newClient(t, cards.NewMemoryStore())

	_, err := c.Create(context.Background(), "", "mountain", "")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "term is required", se.Message)
}

func TestFetchAll_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "bad gateway", se.Message)
}

func TestFetchAll_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, time.Second)
	require.NoError(t, err)
	_, err = c.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com", time.Second)
	assert.Error(t, err)
	_, err = New("://", time.Second)
	assert.Error(t, err)
}
