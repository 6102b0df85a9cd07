package export

import (
	"context"
	"reflect"

	"github.com/felixgeelhaar/arri-go/middleware"
	"github.com/felixgeelhaar/arri-go/schema"
)

// Context is the recursion guard of one root export. It records the named
// types currently being built. A Context is not safe for concurrent use;
// concurrent exports each get their own.
type Context struct {
	ctx        context.Context
	exporter   *Exporter
	inProgress map[string]bool
	depth      int
}

func newContext(ctx context.Context, e *Exporter) *Context {
	return &Context{
		ctx:        ctx,
		exporter:   e,
		inProgress: make(map[string]bool),
	}
}

// Context returns the context.Context of the root export.
func (c *Context) Context() context.Context { return c.ctx }

// Exporter returns the exporter running this export.
func (c *Context) Exporter() *Exporter { return c.exporter }

// Depth returns the number of guarded types currently being built.
func (c *Context) Depth() int { return c.depth }

// InProgress reports whether t is currently being built.
func (c *Context) InProgress(t reflect.Type) bool {
	return c.inProgress[Identity(t)]
}

// Guard builds t unless it is already in progress, in which case it
// returns a reference to t instead. The mark is cleared on every exit
// path, including errors and panics.
func (c *Context) Guard(t reflect.Type, build func() (schema.Node, error)) (schema.Node, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, err
	}

	id := Identity(t)
	if c.inProgress[id] {
		name := c.exporter.Name(t)
		c.exporter.logger.Debug("recursive type replaced by reference",
			middleware.F("type", id),
			middleware.F("ref", name),
		)
		return schema.NewRef(name), nil
	}

	c.inProgress[id] = true
	c.depth++
	defer func() {
		delete(c.inProgress, id)
		c.depth--
	}()

	return build()
}

// ExportOf exports T within c. It is the usual way for an Exportable
// implementation to export the types it is built from.
func ExportOf[T any](c *Context) (schema.Node, error) {
	return c.Export(TypeOf[T]())
}
