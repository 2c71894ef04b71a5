package imports

import (
	"context"
	"testing"

	"github.com/matzehuels/importlint/pkg/resolve"
)

type countingResolver struct {
	resolve.Resolver
	calls int
}

func (c *countingResolver) Resolve(ctx context.Context, req resolve.Request) (resolve.Module, error) {
	c.calls++
	return c.Resolver.Resolve(ctx, req)
}

func TestCategorizer(t *testing.T) {
	ctx := context.Background()
	r := &countingResolver{Resolver: testResolver()}
	c := NewCategorizer(r, []string{"/site"})

	tests := []struct {
		name string
		want Category
	}{
		{"os.path", Standard},
		{"requests", External},
		{"requests.adapters", External},
		{"app.models", Local},
		{"missing", Unknown},
		{"ghost", Unknown},
	}
	for _, tt := range tests {
		got, err := c.Categorize(ctx, tt.name)
		if err != nil {
			t.Fatalf("Categorize(%q) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("Categorize(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	// requests, app, missing and ghost were each looked up once.
	if r.calls != 4 {
		t.Errorf("resolver calls = %d, want 4", r.calls)
	}
}

func TestCategorizerWithoutSitePackages(t *testing.T) {
	c := NewCategorizer(testResolver(), nil)
	got, err := c.Categorize(context.Background(), "requests")
	if err != nil || got != Local {
		t.Errorf("Categorize(requests) = %v, %v; want local", got, err)
	}
}

func TestCategoryString(t *testing.T) {
	for c, want := range map[Category]string{Standard: "standard", External: "external", Local: "local", Unknown: "unknown"} {
		if c.String() != want {
			t.Errorf("String() = %q, want %q", c.String(), want)
		}
	}
}
