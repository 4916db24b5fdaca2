package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "open"})
	}))
	defer srv.Close()

	result := getJSON(srv.URL + "/api/v1/closings/2025-12-05")
	if result["status"] != "open" {
		t.Fatalf("expected status open, got %v", result["status"])
	}
}

func TestCloseDay(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"closing_balance": "4700.00"})
	}))
	defer srv.Close()

	origURL := baseURL
	baseURL = srv.URL
	defer func() { baseURL = origURL }()

	out := captureOutput(t, func() {
		closeDay("2025-12-05", "maria")
	})

	if gotPath != "/api/v1/closings/2025-12-05/close" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotBody["closed_by"] != "maria" {
		t.Fatalf("expected closed_by to be sent, got %v", gotBody)
	}
	if !strings.Contains(out, "4700.00") {
		t.Fatalf("expected closing balance in output, got %q", out)
	}
}
