package registry

import (
	"context"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Option configures a Registry.
type Option func(*Registry)

// WithConcurrency bounds the number of definitions exported at once.
// Zero or less means no limit.
func WithConcurrency(n int) Option {
	return func(r *Registry) {
		r.concurrency = n
	}
}

// WithLogger sets the logger for registry events.
func WithLogger(l middleware.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithRefCheck enables or disables the dangling reference check. It is
// enabled by default.
func WithRefCheck(enabled bool) Option {
	return func(r *Registry) {
		r.checkRefs = enabled
	}
}

type definition struct {
	name string
	typ  reflect.Type
}

// Registry is a concurrency-safe, ordered set of named definitions.
type Registry struct {
	exporter    *export.Exporter
	concurrency int
	checkRefs   bool
	logger      middleware.Logger

	mu          sync.RWMutex
	definitions []definition
	byName      map[string]int
	subscribers map[int]chan struct{}
	nextSub     int
}

// New creates an empty registry exporting through exporter.
func New(exporter *export.Exporter, opts ...Option) *Registry {
	r := &Registry{
		exporter:    exporter,
		checkRefs:   true,
		logger:      middleware.NopLogger{},
		byName:      make(map[string]int),
		subscribers: make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Exporter returns the exporter used for definitions.
func (r *Registry) Exporter() *export.Exporter { return r.exporter }

// Add registers t under name. Names must be unique.
func (r *Registry) Add(name string, t reflect.Type) error {
	if t == nil {
		return protocol.NewUnsupportedType("cannot register a nil type")
	}

	r.mu.Lock()
	if _, exists := r.byName[name]; exists {
		r.mu.Unlock()
		return protocol.NewDuplicateDefinition(name)
	}
	r.byName[name] = len(r.definitions)
	r.definitions = append(r.definitions, definition{name: name, typ: t})
	r.mu.Unlock()

	r.logger.Debug("definition registered",
		middleware.F("name", name),
		middleware.F("type", t.String()),
	)
	r.notify()
	return nil
}

// Register adds T under the exporter's name for it.
func Register[T any](r *Registry) error {
	t := export.TypeOf[T]()
	return r.Add(r.exporter.Name(t), t)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.definitions))
	for i, d := range r.definitions {
		names[i] = d.name
	}
	return names
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.definitions)
}

// Lookup exports the definition registered under name.
func (r *Registry) Lookup(ctx context.Context, name string) (schema.Node, error) {
	r.mu.RLock()
	i, ok := r.byName[name]
	var d definition
	if ok {
		d = r.definitions[i]
	}
	r.mu.RUnlock()

	if !ok {
		return nil, protocol.NewNotFound("unknown definition: " + name)
	}
	return r.exporter.ExportContext(ctx, d.typ)
}

// Definitions exports every registered definition and checks that each
// reference names one of them.
func (r *Registry) Definitions(ctx context.Context) (*Document, error) {
	r.mu.RLock()
	defs := append([]definition(nil), r.definitions...)
	r.mu.RUnlock()

	nodes := make([]schema.Node, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}
	for i, d := range defs {
		g.Go(func() error {
			n, err := r.exporter.ExportContext(gctx, d.typ)
			if err != nil {
				return err
			}
			nodes[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := newDocument()
	for i, d := range defs {
		doc.definitions.Set(d.name, nodes[i])
	}

	if r.checkRefs {
		if err := checkRefs(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func checkRefs(doc *Document) error {
	for pair := doc.definitions.Oldest(); pair != nil; pair = pair.Next() {
		for _, target := range schema.Refs(pair.Value) {
			if _, ok := doc.definitions.Get(target); !ok {
				return protocol.NewDanglingReference(target).WithType(pair.Key)
			}
		}
	}
	return nil
}

// Subscribe returns a channel that receives a value after registry
// changes, and a function that ends the subscription. Notifications
// coalesce: a slow reader sees at least one value per burst of changes.
func (r *Registry) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subscribers[id] = ch
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subscribers, id)
			r.mu.Unlock()
			close(ch)
		})
	}
}

func (r *Registry) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ch := range r.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
