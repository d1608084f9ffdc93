package provider

import (
	"testing"

	"github.com/ttodoshi/weweather-dashboard/pkg/env"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"", OpenWeatherMap, WttrIn} {
		p, err := New(env.Config{Provider: name}, nil)
		if err != nil {
			t.Fatalf("provider %q: %v", name, err)
		}
		if p == nil {
			t.Fatalf("provider %q: expected provider, got nil", name)
		}
	}

	if _, err := New(env.Config{Provider: "metoffice"}, nil); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
