package casing

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/arri-go/protocol"
)

func TestApply(t *testing.T) {
	tests := []struct {
		transform Transform
		input     string
		want      string
	}{
		{Uppercase, "MyVariant", "MYVARIANT"},
		{Lowercase, "MyVariant", "myvariant"},
		{SnakeCase, "MyVariant", "my_variant"},
		{SnakeCase, "hello world", "hello_world"},
		{SnakeCase, "helloWorld", "hello_world"},
		{SnakeCase, "HTTPServerError", "http_server_error"},
		{SnakeCase, "Variant2Name", "variant2_name"},
		{CamelCase, "hello_world", "helloWorld"},
		{CamelCase, "HelloWorld", "helloWorld"},
		{CamelCase, "hello world", "helloWorld"},
		{PascalCase, "hello_world", "HelloWorld"},
		{PascalCase, "helloWorld", "HelloWorld"},
		{KebabCase, "HelloWorld", "hello-world"},
		{ScreamingSnakeCase, "helloWorld", "HELLO_WORLD"},
		{ScreamingKebabCase, "hello_world", "HELLO-WORLD"},
		{CamelCase, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.transform.String()+"/"+tt.input, func(t *testing.T) {
			if got := tt.transform.Apply(tt.input); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyAll(t *testing.T) {
	got := ApplyAll("MyVariant", SnakeCase, Uppercase)
	if got != "MY_VARIANT" {
		t.Errorf("ApplyAll() = %q, want %q", got, "MY_VARIANT")
	}

	if got := ApplyAll("Unchanged"); got != "Unchanged" {
		t.Errorf("ApplyAll() with no transforms = %q, want %q", got, "Unchanged")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Transform
	}{
		{"uppercase", Uppercase},
		{"UPPERCASE", Uppercase},
		{"lowercase", Lowercase},
		{"snake_case", SnakeCase},
		{"snakecase", SnakeCase},
		{"camelCase", CamelCase},
		{"camelcase", CamelCase},
		{"PascalCase", PascalCase},
		{"pascalcase", PascalCase},
		{"kebab-case", KebabCase},
		{"SCREAMING_SNAKE_CASE", ScreamingSnakeCase},
		{"SCREAMING-KEBAB-CASE", ScreamingKebabCase},
		{"snake case", SnakeCase},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("unknown transformation", func(t *testing.T) {
		_, err := Parse("shouting")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, protocol.ErrUnknownTransform) {
			t.Errorf("error = %v, want kind %q", err, protocol.KindUnknownTransform)
		}
		if err.Error() != "arri: unknown transformation: shouting (kind: unknown_transform)" {
			t.Errorf("Error() = %q", err.Error())
		}
	})
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll("snake_case", "uppercase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != SnakeCase || got[1] != Uppercase {
		t.Errorf("ParseAll() = %v, want [snake_case uppercase]", got)
	}

	if _, err := ParseAll("snake_case", "nope"); err == nil {
		t.Error("expected error for unknown transformation")
	}
}

func TestWords(t *testing.T) {
	got := Words("parseHTTPResponse_v2 now")
	want := []string{"parse", "HTTP", "Response", "v2", "now"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
