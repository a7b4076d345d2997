package backend

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	const name = "test-registry"
	calls := 0
	Register(name, func(w, h int) (Backend, error) {
		calls++
		if w != 4 || h != 3 {
			t.Errorf("factory got %dx%d, want 4x3", w, h)
		}
		return nil, nil
	})
	defer Unregister(name)

	if !IsRegistered(name) {
		t.Fatal("IsRegistered() = false after Register")
	}
	found := false
	for _, n := range Available() {
		found = found || n == name
	}
	if !found {
		t.Errorf("Available() = %v, missing %q", Available(), name)
	}

	if _, err := New(name, 4, 3); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("factory called %d times, want 1", calls)
	}
}

func TestNewErrors(t *testing.T) {
	Register("test-sized", func(int, int) (Backend, error) { return nil, nil })
	defer Unregister("test-sized")

	tests := []struct {
		name    string
		backend string
		w, h    int
		want    error
	}{
		{"unknown backend", "does-not-exist", 10, 10, ErrBackendNotAvailable},
		{"zero width", "test-sized", 0, 10, ErrSizeMismatch},
		{"negative height", "test-sized", 10, -1, ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.backend, tt.w, tt.h)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrBackend) {
				t.Errorf("error %v does not wrap ErrBackend", err)
			}
		})
	}
}

func TestCompositeOpString(t *testing.T) {
	tests := []struct {
		op   CompositeOp
		want string
	}{
		{SourceOver, "source-over"},
		{DestinationIn, "destination-in"},
		{DestinationOut, "destination-out"},
		{DestinationAtop, "destination-atop"},
		{Lighter, "lighter"},
		{BlendColorDodge, "color-dodge"},
		{BlendLuminosity, "luminosity"},
		{CompositeOp(200), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
