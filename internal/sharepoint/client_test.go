package sharepoint

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		ctx:        context.Background(),
		driveID:    "drive-1",
		logger:     zap.NewNop(),
		APIURL:     server.URL,
		HTTPClient: server.Client(),
	}
}

func TestListFiles(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/drives/drive-1/root:/Resumes/Incoming:/children", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": [
			{"id": "item-1", "name": "alice.pdf", "size": 120000, "createdDateTime": "2026-08-30T10:00:00Z"},
			{"id": "item-2", "name": "bob.docx", "size": 80000, "createdDateTime": "2026-08-29T09:30:00Z"}
		]}`))
	})

	files, err := client.ListFiles("Resumes/Incoming")

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "alice.pdf", files[0].Name)
	assert.Equal(t, "item-2", files[1].ID)
	assert.Equal(t, 2026, files[0].CreatedTime().Year())
	assert.True(t, (&File{}).CreatedTime().IsZero())
}

func TestListFilesBadStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})

	files, err := client.ListFiles("Resumes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
	assert.Nil(t, files)
}

func TestDownload(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/drives/drive-1/items/item-1/content", r.URL.Path)
		w.Write([]byte("%PDF-1.7 fake"))
	})

	content, err := client.Download("item-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 fake"), content)
}

func TestUpload(t *testing.T) {
	var gotBody []byte
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/drives/drive-1/root:/Reports/screening_results.csv:/content", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = body

		w.WriteHeader(http.StatusCreated)
	})

	err := client.Upload("Reports", "screening_results.csv", []byte("rank,name\n1,Alice\n"))

	require.NoError(t, err)
	assert.Equal(t, []byte("rank,name\n1,Alice\n"), gotBody)
}

func TestUploadBadStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusInsufficientStorage)
	})

	err := client.Upload("Reports", "report.xlsx", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}
