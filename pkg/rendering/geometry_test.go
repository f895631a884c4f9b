package rendering

import "testing"

func TestSize_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want bool
	}{
		{"zero", Size{}, true},
		{"zero width", Size{Width: 0, Height: 10}, true},
		{"zero height", Size{Width: 10, Height: 0}, true},
		{"negative", Size{Width: -1, Height: 10}, true},
		{"positive", Size{Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.size.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSize_Equals(t *testing.T) {
	a := Size{Width: 100, Height: 50}
	if !a.Equals(Size{Width: 100.00001, Height: 50}) {
		t.Error("sizes within tolerance should be equal")
	}
	if a.Equals(Size{Width: 101, Height: 50}) {
		t.Error("sizes outside tolerance should not be equal")
	}
}
