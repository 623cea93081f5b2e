package menu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "secret-key"

func fakeCMS(t *testing.T) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	router.GET("/menu", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if r.Header.Get("X-API-KEY") != testKey {
			http.Error(w, "forbidden", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"contents":[
			{"id":"van","name":"Vanilla","price":"300"},
			{"id":"str","name":"Strawberry","price":450,"comment":"seasonal","image":{"url":"https://img/str.png","width":300,"height":200}},
			{"id":"cho","name":"Chocolate","price":"380"},
			{"id":"lem","name":"Lemon","price":"300"}
		],"totalCount":4,"offset":0,"limit":10}`))
	})
	router.GET("/menu/:id", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		switch ps.ByName("id") {
		case "str":
			w.Write([]byte(`{"id":"str","name":"Strawberry","price":"450"}`))
		case "broken":
			w.Write([]byte(`{"id":"broken","price":"not-a-number"}`))
		case "neg":
			w.Write([]byte(`{"id":"neg","price":-5}`))
		case "empty":
			w.Write([]byte(`{}`))
		default:
			http.Error(w, `{"message":"Content is not found."}`, http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAllSortsAndCoerces(t *testing.T) {
	srv := fakeCMS(t)
	c := NewClient(srv.URL+"/", testKey)

	items, err := c.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 4)
	got := []string{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	assert.Equal(t, []string{"str", "cho", "van", "lem"}, got)
	assert.Equal(t, "450", items[0].Price.String())
	assert.Equal(t, "seasonal", items[0].Comment)
	require.NotNil(t, items[0].Image)
	assert.Equal(t, 300, items[0].Image.Width)
}

func TestFetchAllBadKey(t *testing.T) {
	srv := fakeCMS(t)

	_, err := NewClient(srv.URL, "wrong").FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchAllUnreachable(t *testing.T) {
	srv := fakeCMS(t)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, testKey).FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchAllMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, testKey).FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchOne(t *testing.T) {
	srv := fakeCMS(t)
	c := NewClient(srv.URL, testKey)

	it, err := c.FetchOne(context.Background(), "str")

	require.NoError(t, err)
	assert.Equal(t, "Strawberry", it.Name)
	assert.Equal(t, "450", it.Price.String())
}

func TestFetchOneErrors(t *testing.T) {
	srv := fakeCMS(t)
	c := NewClient(srv.URL, testKey)
	ctx := context.Background()

	for id, want := range map[string]error{
		"nope":   ErrNotFound,
		"":       ErrNotFound,
		"empty":  ErrNotFound,
		"broken": ErrUnavailable,
		"neg":    ErrUnavailable,
	} {
		_, err := c.FetchOne(ctx, id)
		assert.True(t, errors.Is(err, want), "id %q: got %v", id, err)
	}
}

func TestFetchHonoursTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, testKey, WithTimeout(50*time.Millisecond)).FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTimeoutOptionOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	shared := &http.Client{Timeout: time.Minute}
	c := NewClient(srv.URL, testKey, WithTimeout(50*time.Millisecond), WithHTTPClient(shared))

	start := time.Now()
	_, err := c.FetchAll(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, time.Minute, shared.Timeout)
}

func TestNilHTTPClientUsesDefault(t *testing.T) {
	srv := fakeCMS(t)

	assert.NotPanics(t, func() {
		c := NewClient(srv.URL, testKey, WithHTTPClient(nil), WithTimeout(time.Second))
		items, err := c.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, items, 4)
	})
}
