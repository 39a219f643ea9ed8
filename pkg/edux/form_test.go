package edux

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formPage = `<html><body>
<form id="dw__search"><input type="text" name="id" value="search"></form>
<form id="en_form_edit_score" method="post" action="">
  <input type="hidden" name="sectok" value="f00ba4">
  <input type="hidden" name="do" value="save">
  <table>
    <tr><td>novakjan</td><td><input type="text" name="data[novakjan][points]" value="12"></td></tr>
    <tr><td>svobodap</td><td><input type="TEXT" name="data[svobodap][points]"></td></tr>
  </table>
  <input type="checkbox" value="on" title="set vertical offset">
  <input type="submit" name="save" value="Save">
</form>
</body></html>`

func TestParseForm(t *testing.T) {
	form, err := ParseForm(strings.NewReader(formPage))
	require.NoError(t, err)

	assert.Equal(t, "en_form_edit_score", form.ID)
	assert.Equal(t, map[string]string{
		"sectok":                 "f00ba4",
		"do":                     "save",
		"data[novakjan][points]": "12",
		"data[svobodap][points]": "",
		"save":                   "Save",
	}, form.Values())
	assert.Equal(t, []string{"data[novakjan][points]", "data[svobodap][points]"}, form.Columns())
}

func TestParseForm_Czech(t *testing.T) {
	page := `<form id="cs_form_edit_score"><input name="body" value="5"></form>`
	form, err := ParseForm(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"body": "5"}, form.Values())
	assert.Equal(t, "text", form.Fields[0].Type)
}

func TestParseForm_NotFound(t *testing.T) {
	_, err := ParseForm(strings.NewReader(`<form id="dw__search"><input name="id"></form>`))
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestForm_Set(t *testing.T) {
	form, err := ParseForm(strings.NewReader(formPage))
	require.NoError(t, err)

	require.NoError(t, form.Set("data[svobodap][points]", "7"))
	v, ok := form.Value("data[svobodap][points]")
	require.True(t, ok)
	assert.Equal(t, "7", v)

	assert.Error(t, form.Set("data[nobody][points]", "1"))
}

func TestClient_FetchForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/courses/BI-3DT/classification/view/fulltime/tutorials/3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("do") != "edit" {
			t.Errorf("expected do=edit, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(formPage))
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{"SID": "abc123"})
	form, err := client.FetchForm(context.Background(), "BI-3DT", []string{"fulltime", "tutorials", "3"})
	require.NoError(t, err)
	assert.Len(t, form.Fields, 5)
}

func TestClient_SubmitForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("submission must not carry the edit flag, got %q", r.URL.RawQuery)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("data[novakjan][points]"); got != "15" {
			t.Errorf("expected submitted value 15, got %q", got)
		}
		if got := r.PostForm.Get("sectok"); got != "f00ba4" {
			t.Errorf("expected sectok to be submitted, got %q", got)
		}
		w.Write([]byte("<html>saved</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{"SID": "abc123"})
	err := client.SubmitForm(context.Background(), "BI-3DT", []string{"fulltime", "tutorials", "3"}, map[string]string{
		"sectok":                 "f00ba4",
		"data[novakjan][points]": "15",
	})
	require.NoError(t, err)
}
