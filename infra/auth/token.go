// Package auth supplies bearer tokens for the directory API.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// TokenProvider supplies an access token for API authentication. An empty
// token means requests are sent anonymously.
type TokenProvider interface {
	AccessToken() (string, error)
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path     string
	optional bool
}

// NewFileTokenProvider creates a TokenProvider that requires the token file.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// NewOptionalFileTokenProvider creates a TokenProvider that yields an empty
// token when path is blank or the file does not exist.
func NewOptionalFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path, optional: true}
}

// AccessToken reads and returns the token, trimming whitespace.
func (f *FileTokenProvider) AccessToken() (string, error) {
	if f.path == "" {
		if f.optional {
			return "", nil
		}
		return "", errors.New("no token file configured")
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if f.optional && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.path)
	}

	return token, nil
}

// Static is a fixed token.
type Static string

// AccessToken returns the token itself.
func (s Static) AccessToken() (string, error) {
	return string(s), nil
}
