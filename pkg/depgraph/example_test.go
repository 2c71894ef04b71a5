package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/importlint/pkg/depgraph"
)

func ExampleGraph_Cycles() {
	g := depgraph.New()
	_ = g.AddEdge("app.views", "app.models")
	_ = g.AddEdge("app.models", "app.signals")
	_ = g.AddEdge("app.signals", "app.views")
	_ = g.AddEdge("app.views", "requests")

	for _, c := range g.Cycles() {
		fmt.Println(c)
	}
	// Output:
	// app.models -> app.signals -> app.views
}
