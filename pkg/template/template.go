// Package template renders configuration documents for automation platforms
// from a sample of WordPress records.
//
// Every platform shares one field classification step: the first record is
// the structural sample, identity/audit/link fields are read-only system
// fields, and every other field becomes an editable [Field] descriptor with
// an inferred type and a default value. Each [Generator] then wraps those
// descriptors in its platform's boilerplate.
//
//	reg := template.NewRegistry()
//	doc, err := reg.Generate(template.KindNode, template.Request{
//	    ContentType: "product",
//	    Metadata:    meta,
//	    Records:     records,
//	})
//
// A [Document] serializes as its ordered body, so encoding/json output keeps
// the platform's field order.
package template

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/wpbridge-mcp/pkg/record"
)

// Kind selects a target platform shape.
type Kind string

// Supported document kinds.
const (
	KindNode     Kind = "single-node-schema"  // n8n node definition
	KindWorkflow Kind = "two-step-pipeline"   // n8n workflow
	KindZapier   Kind = "trigger-action-pair" // Zapier app definition
	KindScenario Kind = "mapped-pipeline"     // Make scenario
	KindWebhook  Kind = "webhook-config"      // webhook registration
)

var kindAliases = map[string]Kind{
	"n8n-node":     KindNode,
	"node":         KindNode,
	"n8n-workflow": KindWorkflow,
	"workflow":     KindWorkflow,
	"zapier":       KindZapier,
	"make":         KindScenario,
	"scenario":     KindScenario,
	"webhook":      KindWebhook,
}

// ErrEmptyInput is returned when a generator receives no records.
var ErrEmptyInput = errors.New("no records to sample: template shape cannot be inferred")

// ErrUnknownKind is returned for an unregistered document kind.
var ErrUnknownKind = errors.New("unknown template kind")

// ParseKind resolves a kind name or one of its platform aliases.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch k := Kind(s); k {
	case KindNode, KindWorkflow, KindZapier, KindScenario, KindWebhook:
		return k, nil
	}
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Request is the input shared by all generators.
type Request struct {
	// ContentType is the content type key (e.g. "product").
	ContentType string
	// Metadata describes the content type. Key falls back to ContentType.
	Metadata record.ContentType
	// Records is the fetched sample; only the first record shapes the document.
	Records []record.Record
	// Node is a previously generated single-node-schema document. Workflow and
	// scenario generators reference it instead of a generic HTTP step.
	Node *Document
	// TargetURL is the delivery URL for webhook documents.
	TargetURL string
}

func (r Request) key() string {
	if r.ContentType != "" {
		return r.ContentType
	}
	return r.Metadata.Key
}

func (r Request) name() string {
	if r.Metadata.Name != "" {
		return r.Metadata.Name
	}
	return r.key()
}

func (r Request) path() string {
	if r.Metadata.RestBase != "" {
		return r.Metadata.RestBase
	}
	return r.key()
}

// Field describes one editable record field in a generated document.
type Field struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Default  any    `json:"default"`
	RichText bool   `json:"rich_text,omitempty"`
}

// Document is a generated template. It serializes as Body.
type Document struct {
	Kind   Kind
	Fields []Field
	Body   *orderedmap.OrderedMap[string, any]
}

// MarshalJSON encodes the ordered body.
func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil || d.Body == nil {
		return []byte("{}"), nil
	}
	return d.Body.MarshalJSON()
}

// Empty reports whether the document has no body content.
func (d *Document) Empty() bool {
	return d == nil || d.Body == nil || d.Body.Len() == 0
}

func emptyDocument(kind Kind) *Document {
	return &Document{Kind: kind, Fields: []Field{}, Body: orderedmap.New[string, any]()}
}

// Generator renders one platform's document.
type Generator interface {
	Kind() Kind
	Generate(req Request) (*Document, error)
}

// env carries the side-effecting inputs generators need.
type env struct {
	now    func() time.Time
	random io.Reader
	newID  func() string
}

// Option configures a Registry.
type Option func(*env)

// WithClock sets the time source for generated_at stamps.
func WithClock(now func() time.Time) Option {
	return func(e *env) {
		e.now = now
	}
}

// WithRandom sets the entropy source for webhook secrets.
func WithRandom(r io.Reader) Option {
	return func(e *env) {
		e.random = r
	}
}

// WithIDs sets the generator for workflow node IDs.
func WithIDs(newID func() string) Option {
	return func(e *env) {
		e.newID = newID
	}
}

// Registry maps kinds to generators.
type Registry struct {
	generators map[Kind]Generator
}

// NewRegistry returns a registry holding the builtin generators.
func NewRegistry(opts ...Option) *Registry {
	e := &env{
		now:    time.Now,
		random: rand.Reader,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}

	r := &Registry{generators: make(map[Kind]Generator)}
	r.Register(&nodeGenerator{env: e})
	r.Register(&workflowGenerator{env: e})
	r.Register(&zapierGenerator{env: e})
	r.Register(&scenarioGenerator{env: e})
	r.Register(&webhookGenerator{env: e})
	return r
}

// Register adds or replaces the generator for its kind.
func (r *Registry) Register(g Generator) {
	r.generators[g.Kind()] = g
}

// Get returns the generator for kind.
func (r *Registry) Get(kind Kind) (Generator, error) {
	g, ok := r.generators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return g, nil
}

// Kinds lists registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.generators))
	for k := range r.generators {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Generate renders a document of the given kind.
func (r *Registry) Generate(kind Kind, req Request) (*Document, error) {
	g, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return g.Generate(req)
}

// Generate renders a document with a fresh builtin registry.
func Generate(kind Kind, req Request) (*Document, error) {
	return NewRegistry().Generate(kind, req)
}
