package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/pkg/apperror"
)

// Content areas an upload can belong to. Each area maps to its own folder.
const (
	AreaFeed          = "uploads"
	AreaAnnouncements = "announcement_files"
	AreaEvents        = "event_files"
	AreaNotes         = "notes"
)

var (
	// ErrRemoteFile is returned by Open when the file lives on a remote
	// backend and should be fetched through its URL instead.
	ErrRemoteFile = errors.New("file is stored remotely")

	allowedExtensions = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
		".xlsx": true, ".txt": true, ".zip": true,
	}

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// FileStorage persists uploaded artifacts and hands back a reference that can
// be stored on the owning record.
type FileStorage interface {
	// Save stores the content under the given area and returns its reference URL.
	Save(ctx context.Context, r io.Reader, area, fileName string) (string, error)
	// Delete removes a previously saved file. Unknown references are ignored.
	Delete(ctx context.Context, fileURL string) error
	// Open streams a saved file back. Remote backends return ErrRemoteFile.
	Open(ctx context.Context, fileURL string) (io.ReadCloser, error)
}

// ValidateFileName checks the extension against the allow-list.
func ValidateFileName(fileName string) error {
	if fileName == "" {
		return apperror.Validation("no file selected")
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return apperror.Validation(fmt.Sprintf("file type %q is not allowed", ext))
	}
	return nil
}

// StorageKey builds a collision free key: a time ordered id followed by the
// sanitised base name.
func StorageKey(fileName string) string {
	base := filepath.Base(fileName)
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String() + "-" + base
}

// OriginalName strips the key prefix added by StorageKey.
func OriginalName(fileURL string) string {
	base := filepath.Base(fileURL)
	// uuid string is 36 chars followed by '-'
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}
	return base
}

func validArea(area string) bool {
	switch area {
	case AreaFeed, AreaAnnouncements, AreaEvents, AreaNotes:
		return true
	}
	return false
}

// SaveUpload validates and stores an optional upload. An empty name means
// nothing was attached and yields a nil URL.
func SaveUpload(ctx context.Context, fs FileStorage, area, name string, r io.Reader) (*string, error) {
	if name == "" {
		return nil, nil
	}
	if err := ValidateFileName(name); err != nil {
		return nil, err
	}
	url, err := fs.Save(ctx, r, area, name)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	return &url, nil
}
