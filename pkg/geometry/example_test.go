package geometry_test

import (
	"fmt"

	"github.com/matzehuels/pixelgrid/pkg/geometry"
)

func ExampleCalculateGridWidth() {
	fmt.Println(geometry.CalculateColumns(1024, "8px"))
	fmt.Println(geometry.CalculateGridWidth(1024, "8px", "8px"))
	fmt.Println(geometry.OuterColumn("8px"))
	// Output:
	// 128
	// 1024px
	// 64
}
