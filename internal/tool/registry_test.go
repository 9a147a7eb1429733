package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegistry_RegisterAndCall(t *testing.T) {
	r := NewRegistry()
	r.Register("echo", "echoes its first arg", func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		if len(args) == 0 {
			return nil, errors.New("missing arg")
		}
		return args[0], nil
	})

	result, err := r.Call(context.Background(), "echo", []any{"hello"}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result != "hello" {
		t.Errorf("Expected echoed arg, got %v", result)
	}
}

func TestRegistry_UnknownTool(t *testing.T) {
	r := NewRegistry()

	_, err := r.Call(context.Background(), "missing", nil, nil)
	if err == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestRegistry_ToolErrorBecomesFault(t *testing.T) {
	r := NewRegistry()
	r.Register("failing", "", func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		return nil, errors.New("backend unreachable")
	})

	_, err := r.Call(context.Background(), "failing", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "backend unreachable") {
		t.Errorf("Expected fault with original message, got %v", err)
	}
}

func TestRegistry_PanicConvertedToFault(t *testing.T) {
	r := NewRegistry()
	r.Register("panicky", "", func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		panic("boom")
	})

	_, err := r.Call(context.Background(), "panicky", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected panic converted to error, got %v", err)
	}
}

func TestRegistry_ListAndNames(t *testing.T) {
	r := NewRegistry()
	r.Register("b", "second", func(ctx context.Context, args []any, kwargs map[string]any) (any, error) { return nil, nil })
	r.Register("a", "first", func(ctx context.Context, args []any, kwargs map[string]any) (any, error) { return nil, nil })

	list := r.List()
	if len(list) != 2 || list["a"].Description != "first" {
		t.Errorf("Unexpected tool list: %v", list)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Expected sorted names, got %v", names)
	}
}
