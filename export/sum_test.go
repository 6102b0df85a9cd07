package export_test

import (
	"reflect"
	"testing"

	"github.com/felixgeelhaar/arri-go/casing"
	"github.com/felixgeelhaar/arri-go/export"
	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64
}

func (Circle) isShape() {}

type Square struct {
	Side float64 `arri:"description=Edge length"`
}

func (Square) isShape() {}

func (Square) ArriMetadata() schema.Metadata {
	return schema.NewMetadata().WithDescription("A square")
}

type Color string

type Outcome interface {
	isOutcome()
}

type Expr interface {
	isExpr()
}

type Literal struct {
	Value float64
}

func (Literal) isExpr() {}

type Add struct {
	Left  Expr
	Right Expr
}

func (Add) isExpr() {}

type Drawing struct {
	Primary Shape
	Extra   Shape `arri:"optional,nullable"`
}

func TestExportSum(t *testing.T) {
	shapeType := export.TypeOf[Shape]()

	t.Run("tagged union", func(t *testing.T) {
		e := export.New(export.WithSum(shapeType,
			export.Variant("Circle", reflect.TypeOf(Circle{})),
		))
		assertExport(t, e, shapeType,
			`{"discriminator":"type","mapping":{"Circle":{"properties":{"radius":{"type":"float64"}},"optionalProperties":{}}},"metadata":{"id":"Shape"}}`)
	})

	t.Run("variant metadata", func(t *testing.T) {
		e := export.New(export.WithSum(shapeType,
			export.Variant("Circle", reflect.TypeOf(Circle{})),
			export.Variant("Square", reflect.TypeOf(&Square{})),
			export.VariantMetadata("Circle", schema.NewMetadata().WithDescription("This is a Circle")),
		))
		assertExport(t, e, shapeType,
			`{"discriminator":"type","mapping":{"Circle":{"properties":{"radius":{"type":"float64"}},"optionalProperties":{},"metadata":{"description":"This is a Circle"}},"Square":{"properties":{"side":{"type":"float64","metadata":{"description":"Edge length"}}},"optionalProperties":{},"metadata":{"description":"A square"}}},"metadata":{"id":"Shape"}}`)
	})

	t.Run("unnamed payloads with transform and discriminator", func(t *testing.T) {
		outcome := export.TypeOf[Outcome]()
		e := export.New(export.WithSum(outcome,
			export.Transform(casing.Uppercase),
			export.Discriminator("myDiscriminator"),
			export.Variant("Ok", reflect.TypeOf("")),
			export.Variant("Nope", reflect.TypeOf("")),
			export.VariantMetadata("Ok", schema.NewMetadata().WithDescription("My example")),
		))
		assertExport(t, e, outcome,
			`{"discriminator":"myDiscriminator","mapping":{"OK":{"properties":{"value":{"type":"string"}},"optionalProperties":{},"metadata":{"description":"My example"}},"NOPE":{"properties":{"value":{"type":"string"}},"optionalProperties":{}}},"metadata":{"id":"Outcome"}}`)
	})

	t.Run("bare variants make an enum", func(t *testing.T) {
		colorType := reflect.TypeOf(Color(""))
		e := export.New(
			export.WithSum(colorType,
				export.BareVariant("Red", "DarkBlue"),
				export.Transform(casing.SnakeCase, casing.Uppercase),
			),
			export.WithType(colorType, export.Description("Paint colors")),
		)
		assertExport(t, e, colorType,
			`{"enum":["RED","DARK_BLUE"],"metadata":{"id":"Color","description":"Paint colors"}}`)
	})

	t.Run("transform by name", func(t *testing.T) {
		colorType := reflect.TypeOf(Color(""))
		e := export.New(export.WithSum(colorType,
			export.BareVariant("DarkBlue"),
			export.TransformNamed("SCREAMING-KEBAB-CASE"),
		))
		assertExport(t, e, colorType, `{"enum":["DARK-BLUE"],"metadata":{"id":"Color"}}`)
	})

	t.Run("unknown transform name fails", func(t *testing.T) {
		colorType := reflect.TypeOf(Color(""))
		e := export.New(export.WithSum(colorType,
			export.BareVariant("Red"),
			export.TransformNamed("loud"),
		))
		_, err := e.Export(colorType)
		assertKind(t, err, protocol.KindUnknownTransform)
	})

	t.Run("mixed variants fail", func(t *testing.T) {
		e := export.New(export.WithSum(shapeType,
			export.Variant("Circle", reflect.TypeOf(Circle{})),
			export.BareVariant("Point"),
		))
		_, err := e.Export(shapeType)
		assertKind(t, err, protocol.KindMixedVariants)
	})

	t.Run("nil payload fails", func(t *testing.T) {
		e := export.New(export.WithSum(shapeType, export.Variant("Circle", nil)))
		_, err := e.Export(shapeType)
		assertKind(t, err, protocol.KindMalformedAttribute)
	})

	t.Run("recursive sum", func(t *testing.T) {
		exprType := export.TypeOf[Expr]()
		e := export.New(export.WithSum(exprType,
			export.Variant("Literal", reflect.TypeOf(Literal{})),
			export.Variant("Add", reflect.TypeOf(Add{})),
		))
		assertExport(t, e, exprType,
			`{"discriminator":"type","mapping":{"Literal":{"properties":{"value":{"type":"float64"}},"optionalProperties":{}},"Add":{"properties":{"left":{"ref":"Expr"},"right":{"ref":"Expr"}},"optionalProperties":{}}},"metadata":{"id":"Expr"}}`)
	})

	t.Run("tagged union fields cannot be nullable", func(t *testing.T) {
		e := export.New(export.WithSum(shapeType,
			export.Variant("Circle", reflect.TypeOf(Circle{})),
		))
		_, err := e.Export(reflect.TypeOf(Drawing{}))
		assertKind(t, err, protocol.KindMalformedAttribute)
	})
}
