package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileTokenProvider_AccessToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  abc123 \n"), 0o600); err != nil {
		t.Fatalf("write token failed: %v", err)
	}

	for _, p := range []*FileTokenProvider{NewFileTokenProvider(path), NewOptionalFileTokenProvider(path)} {
		got, err := p.AccessToken()
		if err != nil {
			t.Fatalf("access token failed: %v", err)
		}
		if got != "abc123" {
			t.Fatalf("unexpected token: %q", got)
		}
	}
}

func TestFileTokenProvider_AccessTokenErrors(t *testing.T) {
	p := NewFileTokenProvider(filepath.Join(t.TempDir(), "missing"))
	if _, err := p.AccessToken(); err == nil {
		t.Fatalf("expected missing-file error")
	}
	if _, err := NewFileTokenProvider("").AccessToken(); err == nil {
		t.Fatalf("expected error for unset path")
	}

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, []byte(" \n\t"), 0o600); err != nil {
		t.Fatalf("write empty token failed: %v", err)
	}
	for _, p := range []*FileTokenProvider{NewFileTokenProvider(empty), NewOptionalFileTokenProvider(empty)} {
		_, err := p.AccessToken()
		if err == nil || !strings.Contains(err.Error(), "empty") {
			t.Fatalf("expected empty-token error, got: %v", err)
		}
	}
}

func TestOptionalFileTokenProvider_Anonymous(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		got, err := NewOptionalFileTokenProvider(path).AccessToken()
		if err != nil || got != "" {
			t.Fatalf("expected anonymous token for %q, got %q err=%v", path, got, err)
		}
	}
	if tok, _ := Static("s3cret").AccessToken(); tok != "s3cret" {
		t.Fatalf("unexpected static token %q", tok)
	}
}
