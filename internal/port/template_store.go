package port

import (
	"context"
	"time"

	"docverify/internal/domain"
)

// TemplateDefinition is a raw, unparsed template definition as held by a store.
type TemplateDefinition struct {
	ID        string                `db:"template_id"`
	Format    domain.TemplateFormat `db:"format"`
	Data      []byte                `db:"definition"`
	CreatedAt time.Time             `db:"created_at"`
	UpdatedAt time.Time             `db:"updated_at"`
}

// TemplateStore supplies raw template definitions keyed by template id.
// Load returns domain.ErrTemplateNotFound when no definition exists.
type TemplateStore interface {
	Load(ctx context.Context, id string) (*TemplateDefinition, error)
	List(ctx context.Context) ([]string, error)
}

// TemplateRepository is a writable TemplateStore.
type TemplateRepository interface {
	TemplateStore
	Save(ctx context.Context, def *TemplateDefinition) error
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report their reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
