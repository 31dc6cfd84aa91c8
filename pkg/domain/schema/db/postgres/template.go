package postgres

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9_]+`)

// CreateTemplate writes a skeleton migration file into the repository,
// numbered one past the highest version found there.
//
// Returns the path of the new file.
func CreateTemplate(repository string, name string) (string, error) {
	slug := unsafeChars.ReplaceAllString(strings.ToLower(name), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	s := &pgSchema{schemaRepository: repository}
	existing, err := s.migrations()
	if err != nil {
		return "", err
	}

	next := 1
	if 0 < len(existing) {
		next = existing[len(existing)-1].Version + 1
	}

	path := filepath.Join(repository, fmt.Sprintf("%03d_%s.sql", next, slug))
	content := fmt.Sprintf("-- migration %03d: %s\n\n", next, slug)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
