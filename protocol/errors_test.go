package protocol

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "simple error message",
			err:  &Error{Kind: KindNotFound, Message: "no such definition"},
			want: "arri: no such definition (kind: not_found)",
		},
		{
			name: "with type",
			err:  NewUnsupportedType("channels have no schema").WithType("main.Job"),
			want: "arri: main.Job: channels have no schema (kind: unsupported_type)",
		},
		{
			name: "with type and field",
			err:  NewNullableNotOptional("string").WithType("main.User").WithField("Name"),
			want: "arri: main.User.Name: only an optional type can be nullable, use *string instead of string (kind: nullable_not_optional)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err1 := NewMalformedAttribute("bad tag")
	err2 := NewMalformedAttribute("different message")
	err3 := NewInvalidRename("bad tag")

	if !errors.Is(err1, err2) {
		t.Error("errors with same kind should match with errors.Is")
	}
	if errors.Is(err1, err3) {
		t.Error("errors with different kinds should not match with errors.Is")
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err1), ErrMalformedAttribute) {
		t.Error("wrapped error should match its sentinel")
	}
}

func TestError_WithTypeDoesNotMutate(t *testing.T) {
	base := NewUnknownTransform("shouty")
	typed := base.WithType("main.Color")

	if base.Type != "" {
		t.Errorf("base.Type = %q, want empty", base.Type)
	}
	if typed.Type != "main.Color" {
		t.Errorf("typed.Type = %q, want %q", typed.Type, "main.Color")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"unknown transform", NewUnknownTransform("x"), KindUnknownTransform},
		{"nullable", NewNullableNotOptional("int"), KindNullableNotOptional},
		{"mixed", NewMixedVariants("x"), KindMixedVariants},
		{"malformed", NewMalformedAttribute("x"), KindMalformedAttribute},
		{"rename", NewInvalidRename("x"), KindInvalidRename},
		{"unsupported", NewUnsupportedType("x"), KindUnsupportedType},
		{"dangling", NewDanglingReference("Node"), KindDanglingReference},
		{"duplicate", NewDuplicateDefinition("User"), KindDuplicateDefinition},
		{"not found", NewNotFound("x"), KindNotFound},
		{"rate limited", NewRateLimited("User"), KindRateLimited},
		{"internal", NewInternal("x"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
		})
	}
}

func TestNewDefinitionsMessage(t *testing.T) {
	msg := NewDefinitionsMessage(`{"User":{}}`)

	if msg.Type != MessageDefinitions {
		t.Errorf("Type = %q, want %q", msg.Type, MessageDefinitions)
	}
	if msg.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %q, want %q", msg.SchemaVersion, SchemaVersion)
	}
	if string(msg.Definitions) != `{"User":{}}` {
		t.Errorf("Definitions = %s, want %s", msg.Definitions, `{"User":{}}`)
	}
}

func TestNewErrorMessage(t *testing.T) {
	msg := NewErrorMessage(NewNotFound("unknown definition: User"))

	if msg.Type != MessageError {
		t.Errorf("Type = %q, want %q", msg.Type, MessageError)
	}
	if msg.Definitions != nil || msg.SchemaVersion != "" {
		t.Errorf("error message carries definitions: %+v", msg)
	}
	if !errors.Is(msg.Error, ErrNotFound) {
		t.Errorf("Error = %v, want not found", msg.Error)
	}
}
