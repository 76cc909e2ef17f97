package platform

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Platform
		wantErr bool
	}{
		{name: "linux x64", input: "linux-x64", want: LinuxX64},
		{name: "osx arm64", input: "osx-arm64", want: OSXARM64},
		{name: "surrounding whitespace", input: "  windows-x86 ", want: WindowsX86},
		{name: "missing arch", input: "linux-", wantErr: true},
		{name: "missing os", input: "-x64", wantErr: true},
		{name: "no separator", input: "linux", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, p := range []Platform{WindowsX64, OSXX64, LinuxARM32} {
		parsed, err := Parse(p.String())
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", p.String(), err)
		}
		if parsed != p {
			t.Errorf("Parse(%q) = %v, want %v", p.String(), parsed, p)
		}
	}
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         Platform
	}{
		{"linux", "amd64", LinuxX64},
		{"darwin", "arm64", OSXARM64},
		{"windows", "386", WindowsX86},
		{"linux", "arm", LinuxARM32},
	}

	for _, tt := range tests {
		if got := FromGo(tt.goos, tt.goarch); got != tt.want {
			t.Errorf("FromGo(%q, %q) = %v, want %v", tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestCatalogName(t *testing.T) {
	if name, ok := CatalogName(LinuxX64); !ok || name != "linux" {
		t.Errorf("CatalogName(linux-x64) = %q, %v", name, ok)
	}
	if name, ok := CatalogName(OSXARM64); !ok || name != "mac-os-arm64" {
		t.Errorf("CatalogName(osx-arm64) = %q, %v", name, ok)
	}
	if _, ok := CatalogName(LinuxARM32); ok {
		t.Error("CatalogName(linux-arm32) should not be published")
	}
}

func TestProbeable(t *testing.T) {
	tests := []struct {
		name   string
		target Platform
		host   Platform
		want   bool
	}{
		{"same platform", LinuxX64, LinuxX64, true},
		{"x86 on x64 linux", LinuxX86, LinuxX64, true},
		{"x64 on arm64 mac", OSXX64, OSXARM64, true},
		{"x64 on arm64 linux", LinuxX64, LinuxARM64, false},
		{"different os", WindowsX64, LinuxX64, false},
		{"arm64 on x64", OSXARM64, OSXX64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Probeable(tt.host); got != tt.want {
				t.Errorf("%v.Probeable(%v) = %v, want %v", tt.target, tt.host, got, tt.want)
			}
		})
	}
}

func TestPlatformJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		P Platform `json:"platform"`
	}{P: LinuxX64})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"platform":"linux-x64"}` {
		t.Errorf("marshal = %s", data)
	}

	var out struct {
		P Platform `json:"platform"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.P != LinuxX64 {
		t.Errorf("unmarshal = %v, want %v", out.P, LinuxX64)
	}
}
