package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func Test_fail_500_LogsWithRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// capture what LoggerFrom(c) emits
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	// simulate RequestID + request-scoped logger middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})

	r.POST("/clients", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create client")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeCreateFailed || resp.Message != "could not create client" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	// 5xx must land in the log at error level
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), ErrCodeCreateFailed) {
		t.Fatalf("expected error log with code, got: %s", buf.String())
	}
}

func Test_fail_4xx_DoesNotLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-422")
		c.Set("logger", &logger)
		c.Next()
	})

	r.PATCH("/tickets/:id/status", func(c *gin.Context) {
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, "invalid status")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/tickets/1/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != ErrCodeValidationFailed {
		t.Fatalf("unexpected code %q", resp.Code)
	}
	// client errors are the caller's fault, not worth an error log entry
	if buf.Len() != 0 {
		t.Fatalf("4xx must not log, got: %s", buf.String())
	}
}

func Test_Fail_Exported_And_ok(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-404")
		c.Next()
	})

	// exported Fail is what the router's NoRoute fallback uses
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
	})
	r.GET("/created", func(c *gin.Context) {
		ok(c, http.StatusCreated, gin.H{"id": 7, "name": "Ivan"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json 404: %v", err)
	}
	if er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "client not found" {
		t.Fatalf("unexpected 404 body: %+v", er)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/created", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json 201: %v", err)
	}
	if body["name"] != "Ivan" || int(body["id"].(float64)) != 7 {
		t.Fatalf("unexpected ok body: %#v", body)
	}
}
