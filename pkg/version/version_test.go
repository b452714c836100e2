package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0",
		"1.x",
		"-1.0",
		".1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	v1, _ := Parse("1.0")
	v11, _ := Parse("1.1")
	v2, _ := Parse("2.0")

	if !v1.Compatible(v11) || !v11.Compatible(v1) {
		t.Error("1.0 and 1.1 should be compatible")
	}
	if v1.Compatible(v2) || v2.Compatible(v1) {
		t.Error("1.0 and 2.0 should NOT be compatible")
	}
}

func TestReads(t *testing.T) {
	v11, _ := Parse("1.1")
	v10, _ := Parse("1.0")
	v12, _ := Parse("1.2")

	if !v11.Reads(v10) {
		t.Error("1.1 should read 1.0")
	}
	if !v11.Reads(v11) {
		t.Error("1.1 should read 1.1")
	}
	if v11.Reads(v12) {
		t.Error("1.1 should NOT read 1.2")
	}
}

func TestCheckConfig(t *testing.T) {
	tests := []struct {
		declared string
		wantErr  bool
	}{
		{"", false},
		{ConfigFormat, false},
		{"1.99", true},
		{"2.0", true},
		{"one", true},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			err := CheckConfig(tt.declared)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckConfig(%q) error = %v, wantErr %v", tt.declared, err, tt.wantErr)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	if _, err := Parse(Current); err != nil {
		t.Fatalf("Parse(Current) returned error: %v", err)
	}
	if _, err := Parse(ConfigFormat); err != nil {
		t.Fatalf("Parse(ConfigFormat) returned error: %v", err)
	}
}
