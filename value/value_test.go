package value_test

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/value"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		want string
	}{
		{"zero is null", value.Value{}, `null`},
		{"null", value.Null(), `null`},
		{"bool", value.Bool(true), `true`},
		{"pos int", value.PosInt(math.MaxUint64), `18446744073709551615`},
		{"neg int", value.NegInt(-42), `-42`},
		{"float", value.Float(1.5), `1.5`},
		{"large float", value.Float(1500000), `1500000`},
		{"tiny float", value.Float(0.00001), `0.00001`},
		{"nan", value.Float(math.NaN()), `null`},
		{"string", value.String("a\"b\n"), `"a\"b\n"`},
		{"empty array", value.Array(), `[]`},
		{"array", value.Array(value.PosInt(1), value.Null(), value.String("x")), `[1,null,"x"]`},
		{"empty object", value.Object(nil), `{}`},
		{"object sorts keys", value.Object(map[string]value.Value{
			"zeta":  value.Bool(false),
			"alpha": value.Object(map[string]value.Value{"b": value.PosInt(2), "a": value.PosInt(1)}),
		}), `{"alpha":{"a":1,"b":2},"zeta":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Serialize()
			if !ok {
				t.Fatal("Serialize reported absent")
			}
			if got != tt.want {
				t.Errorf("Serialize() = %s, want %s", got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("invalid JSON %s", got)
			}
		})
	}
}

func TestUnmarshal(t *testing.T) {
	t.Run("keeps number representation", func(t *testing.T) {
		v, err := value.Parse([]byte(`[0, -7, 18446744073709551615, 2.5, 1e3, 99999999999999999999]`))
		if err != nil {
			t.Fatal(err)
		}

		wantKinds := []value.NumberKind{
			value.NumberPosInt, value.NumberNegInt, value.NumberPosInt,
			value.NumberFloat, value.NumberFloat, value.NumberFloat,
		}
		for i, e := range v.Elements() {
			n, ok := e.AsNumber()
			if !ok {
				t.Fatalf("element %d is %s, want number", i, e.Kind())
			}
			if n.Kind() != wantKinds[i] {
				t.Errorf("element %d kind = %v, want %v", i, n.Kind(), wantKinds[i])
			}
		}
		n, _ := v.Elements()[2].AsNumber()
		if u, ok := n.Uint64(); !ok || u != math.MaxUint64 {
			t.Errorf("Uint64() = %d, %v, want max uint64", u, ok)
		}
		if got, _ := v.Elements()[4].Serialize(); got != "1000" {
			t.Errorf("Serialize(1e3) = %s, want 1000", got)
		}
	})

	t.Run("object field", func(t *testing.T) {
		var payload struct {
			Data value.Value `json:"data"`
		}
		if err := json.Unmarshal([]byte(`{"data":{"b":[true,null],"a":"x"}}`), &payload); err != nil {
			t.Fatal(err)
		}

		if got := payload.Data.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("Keys() = %v", got)
		}
		b, _ := payload.Data.Get("b")
		if b.Len() != 2 || !b.Elements()[1].IsNull() {
			t.Errorf("unexpected b = %v", b)
		}

		out, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		if want := `{"data":{"a":"x","b":[true,null]}}`; string(out) != want {
			t.Errorf("Marshal = %s, want %s", out, want)
		}
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		if _, err := value.Parse([]byte(`1 2`)); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		if _, err := value.Parse([]byte(`{"a":}`)); err == nil {
			t.Error("expected error")
		}
	})
}

func TestFrom(t *testing.T) {
	var decoded any
	_ = json.Unmarshal([]byte(`{"n":1,"list":["a",false]}`), &decoded)

	v, err := value.From(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.Serialize(); got != `{"list":["a",false],"n":1}` {
		t.Errorf("From(decoded) = %s", got)
	}

	v, err = value.From(map[string][]int8{"xs": {-1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.Serialize(); got != `{"xs":[-1,2]}` {
		t.Errorf("From(map) = %s", got)
	}

	if _, err := value.From(map[int]string{1: "a"}); err == nil {
		t.Error("expected error for non-string map keys")
	}
	if _, err := value.From(make(chan int)); err == nil {
		t.Error("expected error for channel")
	}
}

func TestEqual(t *testing.T) {
	a := value.Object(map[string]value.Value{"x": value.Array(value.PosInt(1))})
	b := value.Object(map[string]value.Value{"x": value.Array(value.Int(1))})
	if !a.Equal(b) {
		t.Error("expected equal")
	}
	if value.PosInt(1).Equal(value.Float(1)) {
		t.Error("numbers of different kinds should differ")
	}
	if value.Null().Equal(value.Bool(false)) {
		t.Error("null should differ from false")
	}
}

type kindCounter struct {
	counts map[string]int
	stop   error
}

func (k *kindCounter) VisitNull() error { k.counts["null"]++; return nil }

func (k *kindCounter) VisitBool(bool) error { k.counts["bool"]++; return nil }

func (k *kindCounter) VisitNumber(value.Number) error { k.counts["number"]++; return nil }

func (k *kindCounter) VisitString(string) error { k.counts["string"]++; return k.stop }

func (k *kindCounter) VisitArray(elems []value.Value) error {
	k.counts["array"]++
	for _, e := range elems {
		if err := e.Accept(k); err != nil {
			return err
		}
	}
	return nil
}

func (k *kindCounter) VisitObject(keys []string, fields map[string]value.Value) error {
	k.counts["object"]++
	for _, key := range keys {
		if err := fields[key].Accept(k); err != nil {
			return err
		}
	}
	return nil
}

func TestVisitor(t *testing.T) {
	v, _ := value.Parse([]byte(`{"a":[1,2,"s"],"b":null,"c":{"d":true}}`))

	t.Run("dispatches every variant", func(t *testing.T) {
		k := &kindCounter{counts: map[string]int{}}
		if err := v.Accept(k); err != nil {
			t.Fatal(err)
		}
		want := map[string]int{"object": 2, "array": 1, "number": 2, "string": 1, "null": 1, "bool": 1}
		if !reflect.DeepEqual(k.counts, want) {
			t.Errorf("counts = %v, want %v", k.counts, want)
		}
	})

	t.Run("propagates errors", func(t *testing.T) {
		stop := errors.New("stop")
		k := &kindCounter{counts: map[string]int{}, stop: stop}
		if err := v.Accept(k); !errors.Is(err, stop) {
			t.Errorf("Accept() = %v, want stop", err)
		}
	})

	t.Run("walk skips children", func(t *testing.T) {
		var seen []string
		value.Walk(v, func(x value.Value) bool {
			seen = append(seen, x.Kind().String())
			return x.Kind() != value.KindArray
		})
		if got := strings.Join(seen, ","); got != "object,array,null,object,bool" {
			t.Errorf("walk order = %s", got)
		}
	})
}

type Event struct {
	Name    string
	Payload value.Value
}

func TestExport(t *testing.T) {
	e := export.New()

	n, err := e.Export(export.TypeOf[value.Value]())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := n.Serialize(); got != `{}` {
		t.Errorf("Export(Value) = %s, want {}", got)
	}

	n, err = e.Export(export.TypeOf[Event]())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"properties":{"name":{"type":"string"},"payload":{}},"optionalProperties":{},"metadata":{"id":"Event"}}`
	if got, _ := n.Serialize(); got != want {
		t.Errorf("Export(Event)\n got: %s\nwant: %s", got, want)
	}
}
