// Package document turns a document reference or upload into raw text for the
// comparison pipeline.
package document

import (
	"context"
	"fmt"
	"sort"

	"docverify/internal/domain"
)

// Decoder converts the bytes of one document format to text.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (string, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, data []byte) (string, error)

func (f DecoderFunc) Decode(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

// Registry maps file types to decoders. Which formats are present depends on
// the build: the docconv-backed formats are left out under the nodocconv tag.
type Registry struct {
	decoders map[domain.FileType]Decoder
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[domain.FileType]Decoder)}
}

// DefaultRegistry returns a Registry with the plain-text decoder and every
// docconv-backed format compiled into this binary.
func DefaultRegistry(readability bool) *Registry {
	r := NewRegistry()
	r.Register(domain.FileTypeTXT, DecoderFunc(DecodeText))
	registerDocconv(r, readability)
	return r
}

// Register adds a decoder for ft, replacing any previous entry.
func (r *Registry) Register(ft domain.FileType, d Decoder) {
	r.decoders[ft] = d
}

// Get returns the decoder for ft.
func (r *Registry) Get(ft domain.FileType) (Decoder, error) {
	d, ok := r.decoders[ft]
	if !ok {
		return nil, fmt.Errorf("%w: no decoder available for %s documents in this build", domain.ErrDocumentSource, ft)
	}
	return d, nil
}

// Types returns the registered file types, sorted.
func (r *Registry) Types() []domain.FileType {
	out := make([]domain.FileType, 0, len(r.decoders))
	for ft := range r.decoders {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
