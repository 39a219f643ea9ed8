package edux

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *httptest.Server, cookies map[string]string) *Client {
	t.Helper()
	client, err := NewClient(Options{
		BaseURL:   server.URL + "/",
		Cookies:   cookies,
		UserAgent: "eduxctl-test",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_ConflictingCookieSources(t *testing.T) {
	_, err := NewClient(Options{
		CookieFile: "/tmp/edux.cookie",
		Cookies:    map[string]string{"SID": "abc"},
	})
	assert.ErrorIs(t, err, ErrBadCookieConfig)
}

func TestNewClient_FromCookieFile(t *testing.T) {
	path := writeFile(t, "SID=abc123\n")

	client, err := NewClient(Options{CookieFile: path})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"SID": "abc123"}, client.Session().Cookies())
	assert.Equal(t, "https://edux.fit.cvut.cz", client.BaseURL())
}

func TestNewClient_MissingCookieFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	_, err := NewClient(Options{})
	assert.ErrorIs(t, err, ErrBadCookieConfig)
}

func TestClient_Get_RotatesCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("SID")
		if err != nil || c.Value != "abc123" {
			t.Errorf("expected SID=abc123 cookie, got %v (%v)", c, err)
		}
		if r.Header.Get("User-Agent") != "eduxctl-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		http.SetCookie(w, &http.Cookie{Name: "SID", Value: "rotated"})
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{"SID": "abc123"})

	body, err := client.Get(context.Background(), "courses/BI-3DT/start", nil)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)

	v, _ := client.Session().Get("SID")
	assert.Equal(t, "rotated", v)
}

func TestClient_Get_Markers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"czech permission denied", `<div id="nepovolena_akce">Nepovolená akce</div>`, ErrPermissionDenied},
		{"english permission denied", `<h1 id="permission_denied">Permission Denied</h1>`, ErrPermissionDenied},
		{"czech not found", `<h1 id="stranka_s_timto_nazvem_jeste_neexistuje">...</h1>`, ErrNotFound},
		{"english not found", `<h1 id="this_topic_does_not_exist_yet">This topic does not exist yet</h1>`, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Edux serves these with a regular 200
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server, map[string]string{})
			_, err := client.Get(context.Background(), "courses/BI-3DT/classification/view/start", nil)
			require.ErrorIs(t, err, tt.want)

			var pageErr *PageError
			require.True(t, errors.As(err, &pageErr))
			assert.Contains(t, pageErr.URL, "/courses/BI-3DT/classification/view/start")
		})
	}
}

func TestClient_Get_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{})
	_, err := client.Get(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 500")
}

func TestClient_FormURL(t *testing.T) {
	client, err := NewClient(Options{Cookies: map[string]string{}})
	require.NoError(t, err)

	path := []string{"fulltime", "tutorials", "3"}
	assert.Equal(t,
		"https://edux.fit.cvut.cz/courses/BI-3DT/classification/view/fulltime/tutorials/3?do=edit",
		client.FormURL("BI-3DT", path, true))
	assert.Equal(t,
		"https://edux.fit.cvut.cz/courses/BI-3DT/classification/view/fulltime/tutorials/3",
		client.FormURL("BI-3DT", path, false))
}

func TestClient_SaveCookies(t *testing.T) {
	client, err := NewClient(Options{Cookies: map[string]string{"SID": "abc123"}})
	require.NoError(t, err)

	path := t.TempDir() + "/edux.cookie"
	require.NoError(t, client.SaveCookies(path))

	cookies, err := LoadCookieFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"SID": "abc123"}, cookies)
}
