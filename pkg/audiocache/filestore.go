package audiocache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// refPattern keeps references to the hash-derived names Resolve
// produces, so a crafted ref can never escape the artifact directory.
var refPattern = regexp.MustCompile(`^[a-f0-9]{64}\.mp3$`)

// FileStore keeps audio artifacts on the local filesystem.
type FileStore struct {
	dir string
}

var _ ArtifactStore = &FileStore{}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Put(_ context.Context, ref string, data []byte) error {
	if !refPattern.MatchString(ref) {
		return fmt.Errorf("invalid artifact reference: %q", ref)
	}
	return os.WriteFile(filepath.Join(s.dir, ref), data, 0o644)
}

func (s *FileStore) Get(_ context.Context, ref string) ([]byte, error) {
	if !refPattern.MatchString(ref) {
		return nil, fmt.Errorf("invalid artifact reference: %q", ref)
	}
	return os.ReadFile(filepath.Join(s.dir, ref))
}
