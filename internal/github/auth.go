package github

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoToken means no credential source produced a token.
var ErrNoToken = errors.New("no GITHUB_TOKEN set and `gh auth token` failed")

// ResolveToken finds a GitHub token, trying in order:
//  1. the GITHUB_TOKEN environment variable
//  2. `gh auth token`, if the gh CLI is installed and authenticated
func ResolveToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	out, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return "", ErrNoToken
	}
	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
