package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantBody string
		wantCT   string
	}{
		{
			name: "yaml with object body",
			file: "request.yaml",
			content: `method: post
url: http://testserver/greet
body:
  name: Ada
`,
			wantBody: `{"name":"Ada"}`,
			wantCT:   "application/json",
		},
		{
			name:     "json with raw body",
			file:     "request.json",
			content:  `{"method": "POST", "url": "http://testserver/greet", "headers": {"Content-Type": "text/plain"}, "body": "hello"}`,
			wantBody: "hello",
			wantCT:   "text/plain",
		},
		{
			name:    "no body",
			file:    "request.yaml",
			content: "url: http://testserver/greet?name=Ada\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write fixture: %v", err)
			}

			src, err := LoadFixture(context.Background(), NewFileLoader(), NewParser(), path)
			if err != nil {
				t.Fatalf("LoadFixture() error = %v", err)
			}

			body, err := src.Body(context.Background())
			if err != nil {
				t.Fatalf("Body() error = %v", err)
			}
			if string(body) != tt.wantBody {
				t.Errorf("Body() = %s, want %s", body, tt.wantBody)
			}
			if got := src.Header().Get("Content-Type"); got != tt.wantCT {
				t.Errorf("Content-Type = %v, want %v", got, tt.wantCT)
			}
			if src.Method() == "" || src.URL().Host != "testserver" {
				t.Errorf("unexpected source: %s %s", src.Method(), src.URL())
			}
		})
	}
}

func TestNewFixtureSource_Defaults(t *testing.T) {
	src, err := NewFixtureSource(RequestFixture{URL: "http://testserver/greet"})
	if err != nil {
		t.Fatalf("NewFixtureSource() error = %v", err)
	}
	if src.Method() != "GET" {
		t.Errorf("Method() = %v, want GET", src.Method())
	}
}

func TestNewFixtureSource_MissingURL(t *testing.T) {
	if _, err := NewFixtureSource(RequestFixture{Method: "GET"}); err == nil {
		t.Error("NewFixtureSource() expected error for missing url")
	}
}
