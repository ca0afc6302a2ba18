package compose_test

import (
	"fmt"

	"github.com/matzehuels/flexgrid/pkg/compose"
	"github.com/matzehuels/flexgrid/pkg/grid"
)

func ExampleComposer_Compose() {
	items := []compose.Item{
		{ID: "a", Label: "Post Title 1"},
		{ID: "b", Label: "Post Title 2"},
		{ID: "c", Label: "Post Title 3"},
	}

	c := compose.New(grid.WithFixedHeight(120))
	seq, err := c.Compose(items, grid.Spec{ContainerWidth: 340, Columns: 2, HorizontalGap: 20, VerticalGap: 20})
	if err != nil {
		panic(err)
	}
	for item, p := range seq.All() {
		fmt.Printf("%s at (%.0f, %.0f) width %.0f\n", item.Label, p.X, p.Y, p.Width)
	}
	// Output:
	// Post Title 1 at (0, 0) width 160
	// Post Title 2 at (180, 0) width 160
	// Post Title 3 at (0, 140) width 160
}
