package cmd

import (
	"strings"
	"testing"
)

func TestInventoryDiff(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		actual   []string
		want     []string
		wantNone bool
	}{
		{
			name:     "identical",
			expected: []string{"bin", "bin/java", "lib"},
			actual:   []string{"bin", "bin/java", "lib"},
			wantNone: true,
		},
		{
			name:     "order does not matter",
			expected: []string{"lib", "bin", "bin/java"},
			actual:   []string{"bin", "bin/java", "lib"},
			wantNone: true,
		},
		{
			name:     "missing file",
			expected: []string{"bin", "bin/java", "lib", "lib/modules"},
			actual:   []string{"bin", "bin/java", "lib"},
			want:     []string{"--- manifest", "+++ disk", "-lib/modules"},
		},
		{
			name:     "extra file",
			expected: []string{"bin", "bin/java"},
			actual:   []string{"bin", "bin/java", "bin/jshell"},
			want:     []string{"+bin/jshell"},
		},
		{
			name:     "both empty",
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff, err := inventoryDiff(tt.expected, tt.actual)
			if err != nil {
				t.Fatalf("inventoryDiff() error = %v", err)
			}
			if tt.wantNone {
				if diff != "" {
					t.Errorf("inventoryDiff() = %q, want no diff", diff)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(diff, want) {
					t.Errorf("diff missing %q:\n%s", want, diff)
				}
			}
		})
	}
}

func TestInventoryDiffDoesNotReorderInput(t *testing.T) {
	expected := []string{"lib", "bin"}
	if _, err := inventoryDiff(expected, nil); err != nil {
		t.Fatal(err)
	}
	if expected[0] != "lib" {
		t.Errorf("inventoryDiff sorted its input: %v", expected)
	}
}
