package export

import (
	"encoding/json"
	"math/big"
	"net"
	"net/netip"
	"net/url"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/felixgeelhaar/arri-go/schema"
)

func scalar(kind schema.Kind) func() schema.Node {
	return func() schema.Node { return schema.NewType(kind) }
}

func empty() schema.Node { return schema.NewEmpty() }

// defaultMappings is the table of types with a fixed schema. Basic kinds,
// slices, arrays, maps and structs are handled structurally and are not
// listed here.
func defaultMappings() map[reflect.Type]func() schema.Node {
	return map[reflect.Type]func() schema.Node{
		// Standard library.
		reflect.TypeOf(time.Time{}):       scalar(schema.KindTimestamp),
		reflect.TypeOf(time.Duration(0)):  scalar(schema.KindInt64),
		reflect.TypeOf(url.URL{}):         scalar(schema.KindString),
		reflect.TypeOf(net.IP{}):          scalar(schema.KindString),
		reflect.TypeOf(netip.Addr{}):      scalar(schema.KindString),
		reflect.TypeOf(netip.Prefix{}):    scalar(schema.KindString),
		reflect.TypeOf(netip.AddrPort{}):  scalar(schema.KindString),
		reflect.TypeOf(big.Int{}):         scalar(schema.KindString),
		reflect.TypeOf(big.Float{}):       scalar(schema.KindString),
		reflect.TypeOf(big.Rat{}):         scalar(schema.KindString),
		reflect.TypeOf(json.Number("")):   scalar(schema.KindString),
		reflect.TypeOf(json.RawMessage{}): empty,
		reflect.TypeOf(struct{}{}):        empty,

		// Atomics are transparent over their value.
		TypeOf[atomic.Bool]():   scalar(schema.KindBoolean),
		TypeOf[atomic.Int32]():  scalar(schema.KindInt32),
		TypeOf[atomic.Int64]():  scalar(schema.KindInt64),
		TypeOf[atomic.Uint32](): scalar(schema.KindUint32),
		TypeOf[atomic.Uint64](): scalar(schema.KindUint64),

		reflect.TypeOf(uuid.UUID{}): scalar(schema.KindString),

		// Postgres value types as scanned by pgx.
		reflect.TypeOf(pgtype.Timestamptz{}): scalar(schema.KindTimestamp),
		reflect.TypeOf(pgtype.Timestamp{}):   scalar(schema.KindTimestamp),
		reflect.TypeOf(pgtype.Date{}):        scalar(schema.KindTimestamp),
		reflect.TypeOf(pgtype.UUID{}):        scalar(schema.KindString),
		reflect.TypeOf(pgtype.Numeric{}):     scalar(schema.KindString),
		reflect.TypeOf(pgtype.Text{}):        scalar(schema.KindString),
		reflect.TypeOf(pgtype.Int8{}):        scalar(schema.KindInt64),
		reflect.TypeOf(pgtype.Int4{}):        scalar(schema.KindInt32),
		reflect.TypeOf(pgtype.Int2{}):        scalar(schema.KindInt16),
		reflect.TypeOf(pgtype.Bool{}):        scalar(schema.KindBoolean),
		reflect.TypeOf(pgtype.Float8{}):      scalar(schema.KindFloat64),
		reflect.TypeOf(pgtype.Float4{}):      scalar(schema.KindFloat32),
		reflect.TypeOf(pgtype.Interval{}):    scalar(schema.KindInt64),
	}
}

var kindScalars = map[reflect.Kind]schema.Kind{
	reflect.String:  schema.KindString,
	reflect.Bool:    schema.KindBoolean,
	reflect.Int8:    schema.KindInt8,
	reflect.Int16:   schema.KindInt16,
	reflect.Int32:   schema.KindInt32,
	reflect.Int64:   schema.KindInt64,
	reflect.Int:     schema.KindInt64,
	reflect.Uint8:   schema.KindUint8,
	reflect.Uint16:  schema.KindUint16,
	reflect.Uint32:  schema.KindUint32,
	reflect.Uint64:  schema.KindUint64,
	reflect.Uint:    schema.KindUint64,
	reflect.Uintptr: schema.KindUint64,
	reflect.Float32: schema.KindFloat32,
	reflect.Float64: schema.KindFloat64,
}
