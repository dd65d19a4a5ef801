package util

import (
	"errors"
	"path"
	"strings"
)

// SanitizeKey normalizes a slash separated storage key and rejects traversal patterns.
func SanitizeKey(key string) (string, error) {
	s := strings.TrimSpace(key)
	if s == "" || strings.Contains(s, "..") {
		return "", errors.New("invalid storage key")
	}
	s = strings.ReplaceAll(s, "\\", "/")
	s = strings.TrimLeft(path.Clean("/"+s), "/")
	if s == "" {
		return "", errors.New("invalid storage key")
	}
	return s, nil
}
