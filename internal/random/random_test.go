package random

import "testing"

func TestLetters(t *testing.T) {
	tests := []struct {
		name   string
		length uint
	}{
		{
			name:   "zero length",
			length: 0,
		},
		{
			name:   "20 length",
			length: 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Letters(tt.length)
			if err != nil {
				t.Fatalf("Letters() error = %v", err)
			}
			if uint(len(got)) != tt.length {
				t.Errorf("Letters() got length = %v, want length %v", len(got), tt.length)
			}
		})
	}
}
