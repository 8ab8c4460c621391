package renderer

import (
	"testing"

	"github.com/df07/go-2d-pathtracer/pkg/core"
	"github.com/df07/go-2d-pathtracer/pkg/integrator"
)

func rowSum(a *Accumulator, y int) core.Vec3 {
	var sum core.Vec3
	for x := 0; x < a.Width(); x++ {
		sum = sum.Add(a.At(x, y))
	}
	return sum
}

func TestAccumulator_HorizontalLine(t *testing.T) {
	a := NewAccumulator(10, 10, core.NewVec2(10, 10))
	a.DrawLines([]integrator.DrawLine{
		{Start: core.NewVec2(0, 5.5), End: core.NewVec2(10, 5.5), Color: core.Gray(1)},
	})

	// Scene y=5.5 lands on row 4 once flipped
	for x := 0; x < 10; x++ {
		if a.At(x, 4) != core.Gray(1) {
			t.Errorf("Pixel (%d,4): expected (1,1,1), got %v", x, a.At(x, 4))
		}
	}
	if got := rowSum(a, 5); !got.IsZero() {
		t.Errorf("Expected row 5 untouched, got %v", got)
	}
	if a.LinesDrawn() != 1 {
		t.Errorf("Expected 1 line drawn, got %d", a.LinesDrawn())
	}
}

func TestAccumulator_DiagonalOneSamplePerStep(t *testing.T) {
	a := NewAccumulator(10, 10, core.NewVec2(10, 10))
	a.DrawLines([]integrator.DrawLine{
		{Start: core.NewVec2(0, 10), End: core.NewVec2(10, 0), Color: core.Gray(1)},
	})

	var total core.Vec3
	for y := 0; y < 10; y++ {
		if a.At(y, y) != core.Gray(1) {
			t.Errorf("Pixel (%d,%d): expected (1,1,1), got %v", y, y, a.At(y, y))
		}
		total = total.Add(rowSum(a, y))
	}
	// Ten samples for a line of length 10*sqrt2
	if total != core.Gray(10) {
		t.Errorf("Expected total energy 10, got %v", total)
	}
}

func TestAccumulator_Scaling(t *testing.T) {
	// 20x10 pixels over a 100x50 scene: 5 scene units per pixel
	a := NewAccumulator(20, 10, core.NewVec2(100, 50))
	p := a.ToPixel(core.NewVec2(50, 50))
	if p != core.NewVec2(10, 0) {
		t.Errorf("Expected top center (10,0), got %v", p)
	}
	p = a.ToPixel(core.NewVec2(0, 0))
	if p != core.NewVec2(0, 10) {
		t.Errorf("Expected bottom left (0,10), got %v", p)
	}
}

func TestAccumulator_DegenerateLine(t *testing.T) {
	a := NewAccumulator(10, 10, core.NewVec2(10, 10))
	a.DrawLines([]integrator.DrawLine{
		{Start: core.NewVec2(2.5, 2.5), End: core.NewVec2(2.5, 2.5), Color: core.NewVec3(1, 2, 3)},
	})
	if a.At(2, 7) != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected point written at (2,7), got %v", a.At(2, 7))
	}
}

func TestAccumulator_Clipping(t *testing.T) {
	a := NewAccumulator(10, 10, core.NewVec2(10, 10))
	a.DrawLines([]integrator.DrawLine{
		{Start: core.NewVec2(-5, 5.5), End: core.NewVec2(5, 5.5), Color: core.Gray(1)},
		{Start: core.NewVec2(20, 20), End: core.NewVec2(30, 30), Color: core.Gray(1)},
	})

	if got := rowSum(a, 4); got != core.Gray(5) {
		t.Errorf("Expected the visible half of the line to deposit 5, got %v", got)
	}
	if a.Coverage() != 0.05 {
		t.Errorf("Expected coverage 0.05, got %f", a.Coverage())
	}
}

func TestAccumulator_AdditiveAndClear(t *testing.T) {
	a := NewAccumulator(4, 4, core.NewVec2(4, 4))
	line := integrator.DrawLine{Start: core.NewVec2(0.5, 0.5), End: core.NewVec2(0.5, 0.5), Color: core.NewVec3(0.5, 1, 2)}
	a.DrawLines([]integrator.DrawLine{line, line, line})

	if a.At(0, 3) != core.NewVec3(1.5, 3, 6) {
		t.Errorf("Expected additive blend (1.5,3,6), got %v", a.At(0, 3))
	}
	if a.Peak() != 6 {
		t.Errorf("Expected peak 6, got %f", a.Peak())
	}

	a.Clear()
	if !a.At(0, 3).IsZero() || a.LinesDrawn() != 0 || a.Peak() != 0 {
		t.Error("Expected empty buffer after clear")
	}
}

func TestCompose(t *testing.T) {
	a := NewAccumulator(2, 1, core.NewVec2(2, 1))
	a.DrawLines([]integrator.DrawLine{
		{Start: core.NewVec2(0.5, 0.5), End: core.NewVec2(0.5, 0.5), Color: core.Gray(4)},
		{Start: core.NewVec2(1.5, 0.5), End: core.NewVec2(1.5, 0.5), Color: core.Gray(400)},
	})

	tests := []struct {
		name       string
		iterations int
		exposure   float64
		expected   [2]uint8
	}{
		// 4 * 0.25 / 4 = 0.25, gamma 2 gives 0.5
		{"averaged", 4, 0.25, [2]uint8{127, 255}},
		{"no iterations", 0, 1, [2]uint8{0, 0}},
		{"negative exposure", 1, -1, [2]uint8{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := a.Compose(tt.iterations, tt.exposure)
			for x := 0; x < 2; x++ {
				c := img.RGBAAt(x, 0)
				if c.R != tt.expected[x] || c.G != tt.expected[x] || c.B != tt.expected[x] {
					t.Errorf("Pixel %d: expected %d, got %v", x, tt.expected[x], c)
				}
				if c.A != 255 {
					t.Errorf("Pixel %d: expected opaque, got alpha %d", x, c.A)
				}
			}
		})
	}
}
