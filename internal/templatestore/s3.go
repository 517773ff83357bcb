package templatestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// S3Store reads definitions stored as objects under a key prefix.
type S3Store struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewS3Store creates a store over bucket/prefix.
func NewS3Store(storage port.ObjectStorage, bucket, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{storage: storage, bucket: bucket, prefix: prefix}
}

func (s *S3Store) Load(ctx context.Context, id string) (*port.TemplateDefinition, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
	}
	for _, e := range domain.TemplateExtensions {
		key := s.prefix + id + e.Ext
		data, err := s.storage.Download(ctx, s.bucket, key)
		if errors.Is(err, domain.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetching template s3://%s/%s: %w", s.bucket, key, err)
		}
		return &port.TemplateDefinition{ID: id, Format: e.Format, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, id)
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.storage.List(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	set := make(map[string]struct{})
	for _, key := range keys {
		if id, _, ok := splitDefinitionName(strings.TrimPrefix(key, s.prefix)); ok {
			set[id] = struct{}{}
		}
	}
	return sortedIDs(set), nil
}

// Save uploads the definition under Key and removes copies of the same id
// stored with other extensions, so Load cannot pick up a stale format.
func (s *S3Store) Save(ctx context.Context, def *port.TemplateDefinition) error {
	if !validID(def.ID) {
		return fmt.Errorf("%w: invalid template id %q", domain.ErrInvalidTemplate, def.ID)
	}
	key := s.Key(def.ID, def.Format)
	contentType := "application/yaml"
	if def.Format == domain.TemplateFormatJSON {
		contentType = "application/json"
	}
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(def.Data),
		ContentType: contentType,
		Size:        int64(len(def.Data)),
	}); err != nil {
		return fmt.Errorf("uploading template s3://%s/%s: %w", s.bucket, key, err)
	}
	for _, e := range domain.TemplateExtensions {
		if other := s.prefix + def.ID + e.Ext; other != key {
			if err := s.storage.Delete(ctx, s.bucket, other); err != nil {
				return fmt.Errorf("removing template s3://%s/%s: %w", s.bucket, other, err)
			}
		}
	}
	return nil
}

// Delete removes every stored copy of id.
func (s *S3Store) Delete(ctx context.Context, id string) error {
	if _, err := s.Load(ctx, id); err != nil {
		return err
	}
	for _, e := range domain.TemplateExtensions {
		key := s.prefix + id + e.Ext
		if err := s.storage.Delete(ctx, s.bucket, key); err != nil {
			return fmt.Errorf("removing template s3://%s/%s: %w", s.bucket, key, err)
		}
	}
	return nil
}

// Key returns the object key a definition with the given id and format is
// stored under.
func (s *S3Store) Key(id string, format domain.TemplateFormat) string {
	ext := ".yaml"
	if format == domain.TemplateFormatJSON {
		ext = ".json"
	}
	return s.prefix + id + ext
}
