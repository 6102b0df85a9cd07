package export

import "github.com/felixgeelhaar/arri-go/schema"

// Result is a success-or-failure value. It exports as a tagged union with
// an "Ok" and an "Err" variant, each holding a required "value".
type Result[T, E any] struct {
	Ok  *T `json:",omitempty"`
	Err *E `json:",omitempty"`
}

// OkResult returns a successful Result.
func OkResult[T, E any](v T) Result[T, E] {
	return Result[T, E]{Ok: &v}
}

// ErrResult returns a failed Result.
func ErrResult[T, E any](err E) Result[T, E] {
	return Result[T, E]{Err: &err}
}

// IsOk reports whether r holds a success value.
func (r Result[T, E]) IsOk() bool { return r.Ok != nil }

func (Result[T, E]) ExportArri(c *Context) (schema.Node, error) {
	ok, err := ExportOf[T](c)
	if err != nil {
		return nil, err
	}
	failure, err := ExportOf[E](c)
	if err != nil {
		return nil, err
	}

	return schema.NewTaggedUnion().
		AddMapping("Ok", schema.NewProperties().SetProperty("value", ok)).
		AddMapping("Err", schema.NewProperties().SetProperty("value", failure)), nil
}
