package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDownloadZipConsumesOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("UPLOAD_PATH", t.TempDir())
	if err := InitStorage(); err != nil {
		t.Fatalf("InitStorage returned error: %v", err)
	}

	name := "1700000000000.zip"
	path := filepath.Join(Archive.ArchiveDir(), name)
	if err := os.WriteFile(path, []byte("archive bytes"), 0o644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/zip/download-zip/"+name, nil)
	c.Params = gin.Params{{Key: "filename", Value: name}}

	DownloadZip(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("served archive was not consumed: %v", err)
	}
}

func TestDownloadZipUnknownName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("UPLOAD_PATH", t.TempDir())
	if err := InitStorage(); err != nil {
		t.Fatalf("InitStorage returned error: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/zip/download-zip/missing.zip", nil)
	c.Params = gin.Params{{Key: "filename", Value: "missing.zip"}}

	DownloadZip(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
