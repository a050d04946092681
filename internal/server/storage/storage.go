// Package storage keeps uploaded resumes, profile photos and company
// documents on local disk or in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/gabriel-vasile/mimetype"
)

// Backend stores blobs under slash-separated relative keys.
type Backend interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = fmt.Errorf("%w: file not found", common.ErrNotFound)

// Kind selects the folder and the accepted content types of an upload.
type Kind string

const (
	KindResume   Kind = "resumes"
	KindPhoto    Kind = "profile_photos"
	KindDocument Kind = "documents"
)

var allowed = map[Kind][]string{
	KindResume:   {"application/pdf"},
	KindPhoto:    {"image/jpeg", "image/png"},
	KindDocument: {"application/pdf", "image/jpeg", "image/png"},
}

var rejection = map[Kind]string{
	KindResume:   "Resume must be a PDF file",
	KindPhoto:    "Profile photo must be JPG or PNG",
	KindDocument: "Company documents must be PDF, JPG, or PNG",
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Data     []byte
}

// Stored describes a saved upload.
type Stored struct {
	Filename    string
	Path        string
	ContentType string
	UploadedAt  time.Time
}

// Files validates uploads, names them and maps them to public paths
// ("{prefix}/{kind}/{name}").
type Files struct {
	backend Backend
	prefix  string
	maxSize int64
	now     func() time.Time
	random  func() (string, error)
}

func NewFiles(backend Backend, publicPrefix string, maxSize int64) *Files {
	return &Files{
		backend: backend,
		prefix:  "/" + strings.Trim(publicPrefix, "/"),
		maxSize: maxSize,
		now:     time.Now,
		random:  func() (string, error) { return common.RandomDigits(9) },
	}
}

// Validate checks size and sniffed content type and returns the detected
// MIME type.
func (f *Files) Validate(kind Kind, u Upload) (string, error) {
	types, ok := allowed[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown upload kind %q", common.ErrInvalidFile, kind)
	}
	if len(u.Data) == 0 {
		return "", common.Validationf("empty file")
	}
	if f.maxSize > 0 && int64(len(u.Data)) > f.maxSize {
		return "", common.Validationf("file too large, maximum is %d bytes", f.maxSize)
	}
	mt := mimetype.Detect(u.Data)
	for _, t := range types {
		if mt.Is(t) {
			return t, nil
		}
	}
	return "", common.Validationf("%s", rejection[kind])
}

// Save validates u and stores it as "<unix-ms>-<owner>-<random><ext>".
func (f *Files) Save(ctx context.Context, kind Kind, ownerID string, u Upload) (*Stored, error) {
	ct, err := f.Validate(kind, u)
	if err != nil {
		return nil, err
	}
	rnd, err := f.random()
	if err != nil {
		return nil, err
	}
	now := f.now()
	name := fmt.Sprintf("%d-%s-%s%s", now.UnixMilli(), ownerID, rnd, strings.ToLower(filepath.Ext(u.Filename)))
	key := path.Join(string(kind), name)

	if err := f.backend.Put(ctx, key, bytes.NewReader(u.Data), int64(len(u.Data)), ct); err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	return &Stored{
		Filename:    u.Filename,
		Path:        f.prefix + "/" + key,
		ContentType: ct,
		UploadedAt:  now,
	}, nil
}

// Key maps a public path to its storage key. It rejects paths outside the
// prefix and any attempt to climb out of the storage root.
func (f *Files) Key(publicPath string) (string, error) {
	p := path.Clean("/" + strings.TrimPrefix(publicPath, "/"))
	if p != f.prefix && !strings.HasPrefix(p, f.prefix+"/") {
		return "", ErrNotFound
	}
	key := strings.TrimPrefix(strings.TrimPrefix(p, f.prefix), "/")
	if key == "" || strings.HasPrefix(key, "..") {
		return "", ErrNotFound
	}
	return key, nil
}

// Remove deletes the file behind publicPath. Empty paths are ignored.
func (f *Files) Remove(ctx context.Context, publicPath string) error {
	if publicPath == "" {
		return nil
	}
	key, err := f.Key(publicPath)
	if err != nil {
		return err
	}
	return f.backend.Delete(ctx, key)
}

// Open returns the file behind publicPath with its sniffed content type.
func (f *Files) Open(ctx context.Context, publicPath string) (io.ReadCloser, string, error) {
	key, err := f.Key(publicPath)
	if err != nil {
		return nil, "", err
	}
	rc, err := f.backend.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		_ = rc.Close()
		return nil, "", err
	}
	head = head[:n]
	ct := mimetype.Detect(head).String()

	return struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), rc), rc}, ct, nil
}
