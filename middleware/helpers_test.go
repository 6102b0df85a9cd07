package middleware

import (
	"context"
	"reflect"

	"github.com/felixgeelhaar/arri-go/schema"
)

var stringType = reflect.TypeOf("")

func okExport(_ context.Context, _ reflect.Type) (schema.Node, error) {
	return schema.NewType(schema.KindString), nil
}
