package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetscribe/meetscribe/errors"
)

// allowedMimeTypes is the audio allow-list; anything else is rejected
// before the file is copied out of the multipart spool.
var allowedMimeTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/m4a":  true,
	"audio/ogg":  true,
	"audio/webm": true,
	"audio/mp4":  true,
	"audio/aac":  true,
}

// StoredFile describes one accepted upload on disk
type StoredFile struct {
	ID         string
	FileName   string // original client file name
	StoredName string
	Path       string
	Size       int64
	MimeType   string
}

// Store validates and persists uploaded audio files in the upload dir
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates the upload store, ensuring the directory exists
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Save validates the multipart file and writes it to the upload dir.
// Type and size checks run before any copy so rejected uploads cost
// nothing beyond the multipart spool.
func (s *Store) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	mimeType := contentType(fh)
	if !allowedMimeTypes[mimeType] {
		return nil, errors.ErrInvalidFileType(mimeType)
	}
	if fh.Size > s.maxSize {
		return nil, errors.ErrFileTooLarge(fh.Size, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	id := uuid.New().String()
	storedName := fmt.Sprintf("%s-%d%s", id, time.Now().UnixMilli(), filepath.Ext(fh.Filename))
	path := filepath.Join(s.dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("create upload file: %w", err))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, errors.ErrInternal(fmt.Errorf("write upload: %w", err))
	}

	return &StoredFile{
		ID:         id,
		FileName:   fh.Filename,
		StoredName: storedName,
		Path:       path,
		Size:       fh.Size,
		MimeType:   mimeType,
	}, nil
}

// Remove deletes a stored upload from disk
func (s *Store) Remove(f *StoredFile) error {
	if f == nil {
		return nil
	}
	return os.Remove(f.Path)
}

// AllowedTypes lists the accepted MIME types
func AllowedTypes() []string {
	types := make([]string, 0, len(allowedMimeTypes))
	for t := range allowedMimeTypes {
		types = append(types, t)
	}
	return types
}

// contentType returns the declared media type without parameters
func contentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.TrimSpace(strings.ToLower(ct))
}
