package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docverify/internal/domain"
	"docverify/internal/port"
)

const s3Scheme = "s3://"

// Source is where a comparison gets its document text from. Text wins when it
// is not blank; otherwise Content (an upload named Filename) or Path (a local
// file or an s3://bucket/key reference) is decoded.
type Source struct {
	Text     string
	Path     string
	Content  []byte
	Filename string
}

// Resolver obtains raw text for a Source.
type Resolver struct {
	decoders *Registry
	storage  port.ObjectStorage
	baseDir  string
	maxSize  int64
}

// NewResolver creates a Resolver. storage may be nil when s3:// references are
// not supported. A non-empty baseDir confines local paths to that directory;
// relative paths are resolved against it. maxSize of zero disables the size
// limit.
func NewResolver(decoders *Registry, storage port.ObjectStorage, baseDir string, maxSize int64) *Resolver {
	return &Resolver{decoders: decoders, storage: storage, baseDir: baseDir, maxSize: maxSize}
}

// Text returns the document's raw text. Every failure wraps
// domain.ErrDocumentSource.
func (r *Resolver) Text(ctx context.Context, src Source) (string, error) {
	if strings.TrimSpace(src.Text) != "" {
		return src.Text, nil
	}

	var (
		data []byte
		name string
		err  error
	)
	switch {
	case len(src.Content) > 0:
		data, name = src.Content, src.Filename
		if err := r.checkSize(int64(len(data)), name); err != nil {
			return "", err
		}
	case src.Path != "":
		data, err = r.read(ctx, src.Path)
		if err != nil {
			return "", err
		}
		name = src.Path
	default:
		return "", fmt.Errorf("%w: no input: either document text or a document reference is required", domain.ErrDocumentSource)
	}

	ft, err := DetectFileType(name, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDocumentSource, err)
	}
	dec, err := r.decoders.Get(ft)
	if err != nil {
		return "", err
	}
	text, err := dec.Decode(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: decoding failed for %s: %v", domain.ErrDocumentSource, name, err)
	}
	if strings.TrimSpace(text) == "" {
		log.Printf("documentResolver.Text: %s (%s) decoded to empty text", name, ft)
	}
	return text, nil
}

func (r *Resolver) read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, s3Scheme) {
		return r.readS3(ctx, ref)
	}

	path, err := r.localPath(ref)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: document %s does not exist", domain.ErrDocumentSource, ref)
		}
		return nil, fmt.Errorf("%w: unreadable path %s: %v", domain.ErrDocumentSource, ref, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrDocumentSource, ref)
	}
	if err := r.checkSize(info.Size(), ref); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable path %s: %v", domain.ErrDocumentSource, ref, err)
	}
	return data, nil
}

func (r *Resolver) readS3(ctx context.Context, ref string) ([]byte, error) {
	if r.storage == nil {
		return nil, fmt.Errorf("%w: object storage is not configured for %s", domain.ErrDocumentSource, ref)
	}
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: malformed object reference %s", domain.ErrDocumentSource, ref)
	}
	data, err := r.storage.Download(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, domain.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: document %s does not exist", domain.ErrDocumentSource, ref)
		}
		return nil, fmt.Errorf("%w: fetching %s: %v", domain.ErrDocumentSource, ref, err)
	}
	if err := r.checkSize(int64(len(data)), ref); err != nil {
		return nil, err
	}
	return data, nil
}

// localPath resolves ref against baseDir and rejects paths outside it.
func (r *Resolver) localPath(ref string) (string, error) {
	if r.baseDir == "" {
		return filepath.Clean(ref), nil
	}
	base, err := filepath.Abs(r.baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolving document directory: %v", domain.ErrDocumentSource, err)
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the document directory", domain.ErrDocumentSource, ref)
	}
	return path, nil
}

func (r *Resolver) checkSize(size int64, name string) error {
	if r.maxSize > 0 && size > r.maxSize {
		return fmt.Errorf("%w: %w: %s is %d bytes, limit is %d", domain.ErrDocumentSource, domain.ErrFileTooLarge, name, size, r.maxSize)
	}
	return nil
}
