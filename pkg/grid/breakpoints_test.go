package grid

import (
	"math"
	"testing"
)

func TestBreakpointsColumns(t *testing.T) {
	bps := Breakpoints{
		{MinWidth: 900, Columns: 4},
		{MinWidth: 0, Columns: 1},
		{MinWidth: 360, Columns: 2},
		{MinWidth: 600, Columns: 3},
	}

	tests := []struct {
		width float64
		want  int
	}{
		{0, 1},
		{359.9, 1},
		{360, 2},
		{599, 2},
		{600, 3},
		{2000, 4},
	}

	for _, tt := range tests {
		if got := bps.Columns(tt.width); got != tt.want {
			t.Errorf("Columns(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBreakpointsEmpty(t *testing.T) {
	if got := Breakpoints(nil).Columns(1000); got != 1 {
		t.Errorf("Columns() with no breakpoints = %d, want 1", got)
	}
}

func TestBreakpointsApply(t *testing.T) {
	bps := Breakpoints{{MinWidth: 320, Columns: 2}}
	spec := bps.Apply(Spec{ContainerWidth: 390, MinItemWidth: 120})
	if spec.Columns != 2 || spec.MinItemWidth != 0 {
		t.Errorf("Apply() = %+v, want Columns=2 MinItemWidth=0", spec)
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("applied spec should validate: %v", err)
	}
}

func TestBreakpointsValidate(t *testing.T) {
	tests := []struct {
		name    string
		bps     Breakpoints
		wantErr bool
	}{
		{"valid", Breakpoints{{MinWidth: 0, Columns: 1}}, false},
		{"empty", nil, false},
		{"zero columns", Breakpoints{{MinWidth: 0, Columns: 0}}, true},
		{"negative width", Breakpoints{{MinWidth: -1, Columns: 2}}, true},
		{"NaN width", Breakpoints{{MinWidth: math.NaN(), Columns: 2}}, true},
		{"infinite width", Breakpoints{{MinWidth: math.Inf(1), Columns: 2}}, true},
		{"too many columns", Breakpoints{{MinWidth: 0, Columns: MaxColumns + 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bps.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
