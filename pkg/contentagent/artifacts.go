// Local persistence for generated media files.
package contentagent

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ArtifactKind distinguishes generated media types.
type ArtifactKind string

const (
	ArtifactImage ArtifactKind = "image"
	ArtifactVideo ArtifactKind = "video"
)

// Artifact records one generated file. Immutable after creation.
type Artifact struct {
	ID        string
	Kind      ArtifactKind
	SourceURL string
	Path      string
	CreatedAt time.Time
}

// ArtifactStore saves generated payloads under a fixed output directory,
// one subdirectory per kind. Filenames carry a second-resolution timestamp;
// a sequence suffix disambiguates saves landing in the same second.
type ArtifactStore struct {
	mu        sync.Mutex
	root      string
	now       func() time.Time
	lastStamp string
	seq       int
	saved     []Artifact
}

// NewArtifactStore returns a store rooted at dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{root: dir, now: time.Now}
}

// Save writes data to disk and records the artifact. tag is an optional
// platform marker inserted into the filename.
func (s *ArtifactStore) Save(kind ArtifactKind, tag, ext, sourceURL string, data []byte) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(s.root, string(kind)+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("create output dir: %w", err)
	}

	createdAt := s.now()
	stamp := createdAt.Format("20060102_150405")
	if stamp == s.lastStamp {
		s.seq++
	} else {
		s.lastStamp = stamp
		s.seq = 0
	}

	name := string(kind)
	if tag != "" {
		name += "_" + tag
	}
	name += "_" + stamp
	if s.seq > 0 {
		name += fmt.Sprintf("_%d", s.seq)
	}
	name += ext

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	artifact := Artifact{
		ID:        uuid.NewString(),
		Kind:      kind,
		SourceURL: sourceURL,
		Path:      abs,
		CreatedAt: createdAt,
	}
	s.saved = append(s.saved, artifact)
	return artifact, nil
}

// Latest returns the most recently saved artifact of the given kind. It
// falls back to scanning the output directory so files from earlier runs
// are still found.
func (s *ArtifactStore) Latest(kind ArtifactKind) (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].Kind == kind {
			return s.saved[i], true
		}
	}

	dir := filepath.Join(s.root, string(kind)+"s")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Artifact{}, false
	}

	var latestPath string
	var latestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestPath == "" || info.ModTime().After(latestMod) {
			latestPath = filepath.Join(dir, entry.Name())
			latestMod = info.ModTime()
		}
	}
	if latestPath == "" {
		return Artifact{}, false
	}
	abs, err := filepath.Abs(latestPath)
	if err != nil {
		abs = latestPath
	}
	return Artifact{Kind: kind, Path: abs, CreatedAt: latestMod}, true
}

// List returns all artifacts saved in this process, oldest first.
func (s *ArtifactStore) List() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Artifact(nil), s.saved...)
}
