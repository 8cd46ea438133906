package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"proassignment/internal/adapter/http/middleware"
	"proassignment/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	clientViewer = entities.Viewer{UserID: "c1", Role: entities.RoleClient}
	writerViewer = entities.Viewer{UserID: "w1", Role: entities.RoleWriter}
	adminViewer  = entities.Viewer{UserID: "ad", Role: entities.RoleAdmin}
)

// as stands in for RequireAuth in handler tests.
func as(v entities.Viewer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, v.UserID)
		c.Set(middleware.ContextRole, v.Role)
		c.Next()
	}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a form with text fields and files keyed by field name.
func multipartRequest(t *testing.T, path string, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for field, names := range files {
		for _, name := range names {
			fw, err := mw.CreateFormFile(field, name)
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			_, _ = fw.Write([]byte("content of " + name))
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
