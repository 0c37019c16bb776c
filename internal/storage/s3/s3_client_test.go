package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll/internal/config"
	"payroll/internal/port"
	"payroll/internal/storage/s3"
)

func TestArchive_Put(t *testing.T) {
	var gotMethod, gotPath, gotType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	archive, err := s3.NewArchive(context.Background(), &config.ArchiveConfig{
		Enabled:   true,
		Region:    "us-east-1",
		Bucket:    "payroll-archive",
		Endpoint:  server.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	location, err := archive.Put(context.Background(), port.ArchiveObject{
		Key:         "sheets/1700000000000.xlsx",
		Body:        []byte("workbook"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/payroll-archive/sheets/1700000000000.xlsx", gotPath)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", gotType)
	assert.Equal(t, []byte("workbook"), gotBody)
	assert.Contains(t, location, "/payroll-archive/sheets/1700000000000.xlsx")
}

func TestArchive_PutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer server.Close()

	archive, err := s3.NewArchive(context.Background(), &config.ArchiveConfig{
		Region: "us-east-1", Bucket: "b", Endpoint: server.URL, AccessKey: "k", SecretKey: "s",
	})
	require.NoError(t, err)

	_, err = archive.Put(context.Background(), port.ArchiveObject{Key: "k", Body: []byte("x")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 upload k")
}
