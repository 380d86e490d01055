package api

import (
	"fmt"
	"os"
	"strings"
)

// FileAuth reads the bearer token from a file on disk. It doubles as the
// wizard's Authorizer: the session counts as authenticated when a non-empty
// token is present. Token validity is the backend's call; a stale token
// surfaces as a submission failure the user can recover from.
type FileAuth struct {
	Path string
}

// Token returns the trimmed token file contents.
func (f *FileAuth) Token() (string, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.Path)
	}
	return token, nil
}

// IsAuthenticated implements listing.Authorizer.
func (f *FileAuth) IsAuthenticated() bool {
	_, err := f.Token()
	return err == nil
}
