package sqlite

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

// URLPrefix is the public path under which stored images are served.
const URLPrefix = "/static/uploads/"

// FileStore keeps product images on disk under a single uploads directory.
// Files are named by random UUID so uploads never collide or get guessed.
type FileStore struct {
	dir string
	log *logger.Logger
}

// NewFileStore creates the uploads directory if needed.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// SaveDataURI decodes a base64 data URI and writes it as a new file,
// returning the public URL.
func (s *FileStore) SaveDataURI(dataURI string) (string, error) {
	_, payload, ok := strings.Cut(dataURI, ";base64,")
	if !ok || !strings.HasPrefix(dataURI, "data:image") {
		return "", fmt.Errorf("not an image data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decoding image data: %w", err)
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".jpg"
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return URLPrefix + name, nil
}

// Delete removes a stored image file. URLs outside the store and already
// missing files are ignored.
func (s *FileStore) Delete(publicURL string) {
	if !s.IsStored(publicURL) {
		return
	}
	name := filepath.Base(publicURL)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warnw("deleting image file failed", "file", name, "error", err)
	}
}

// IsStored reports whether the URL points into this store.
func (s *FileStore) IsStored(publicURL string) bool {
	return strings.HasPrefix(publicURL, URLPrefix)
}

// Dir returns the directory images are stored in, for static file serving.
func (s *FileStore) Dir() string {
	return s.dir
}
