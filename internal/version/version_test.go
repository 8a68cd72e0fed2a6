package version

import (
	"testing"

	"github.com/ArtekArtek/fiddle/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"v4.0.0", "4.0.0"},
		{"4.0.0", "4.0.0"},
		{"  v10.1.2 ", "10.1.2"},
		{"v13.0.0-beta.3", "13.0.0-beta.3"},
		{"v", ""},
		{"", ""},
	}

	for _, test := range tests {
		result := Normalize(test.input)
		if result != test.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"v4.0.0", true},
		{"4.0.0", true},
		{"13.0.0-beta.3", true},
		{"not-a-version", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsValid(test.input)
		if result != test.expected {
			t.Errorf("IsValid(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"4.0.0", "4.0.0", 0},
		{"v4.0.0", "4.0.0", 0},
		{"4.0.0", "5.0.0", -1},
		{"10.0.0", "9.9.9", 1},
		{"13.0.0-beta.3", "13.0.0", -1},
	}

	for _, test := range tests {
		result := Compare(test.a, test.b)
		if result != test.expected {
			t.Errorf("Compare(%q, %q) = %d, expected %d", test.a, test.b, result, test.expected)
		}
	}
}

func TestSortDescending(t *testing.T) {
	tags := []string{"9.0.0", "v10.0.0", "10.0.0-beta.1", "8.2.5"}
	SortDescending(tags)

	expected := []string{"v10.0.0", "10.0.0-beta.1", "9.0.0", "8.2.5"}
	for i := range expected {
		if tags[i] != expected[i] {
			t.Fatalf("SortDescending order = %v, expected %v", tags, expected)
		}
	}
}

func TestToRecord(t *testing.T) {
	versions := []model.Version{
		{TagName: "v4.0.0", State: model.StateReady},
		{TagName: "5.0.0"},
		{TagName: "4.0.0", State: model.StateDownloading},
	}

	record := ToRecord(versions)

	if len(record) != 2 {
		t.Fatalf("expected 2 entries after duplicate collapse, got %d", len(record))
	}

	// Keys must be normalized
	if _, exists := record["v4.0.0"]; exists {
		t.Error("record key was not normalized")
	}

	// Last entry wins for duplicate keys
	if record["4.0.0"].State != model.StateDownloading {
		t.Errorf("expected duplicate key to resolve to last entry, got state %s", record["4.0.0"].State)
	}

	if record["4.0.0"].TagName != "4.0.0" {
		t.Errorf("expected stored TagName normalized, got %q", record["4.0.0"].TagName)
	}
}
