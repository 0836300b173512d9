package features

import (
	"reflect"
	"testing"
)

func TestExtractReturnsDictionaryOrder(t *testing.T) {
	e := NewTagExtractor()
	// Text mentions sustainable before bamboo; output order must follow
	// the dictionary, not the text.
	got := e.Extract("A sustainable handle carved from bamboo.")
	want := []string{"bamboo", "sustainable"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtractMatchesPunctuationVariants(t *testing.T) {
	e := NewTagExtractor()
	tests := []struct {
		text string
		tag  string
	}{
		{"100% plastic-free packaging", "plastic_free"},
		{"Plastic free shipping", "plastic_free"},
		{"zero-waste starter kit", "zero_waste"},
		{"Eco friendly materials", "eco_friendly"},
		{"cruelty-free and vegan", "cruelty_free"},
		{"made from plant based wax", "plant_based"},
	}
	for _, tt := range tests {
		got := e.Extract(tt.text)
		found := false
		for _, tag := range got {
			if tag == tt.tag {
				found = true
			}
		}
		if !found {
			t.Errorf("Extract(%q) = %v, missing %q", tt.text, got, tt.tag)
		}
	}
}

func TestExtractDeduplicates(t *testing.T) {
	e := NewTagExtractor()
	got := e.Extract("bamboo bamboo bambu BAMBOO")
	if len(got) != 1 || got[0] != "bamboo" {
		t.Errorf("Extract = %v, want exactly [bamboo]", got)
	}
}

func TestExtractNoMatches(t *testing.T) {
	e := NewTagExtractor()
	if got := e.Extract("ordinary plastic sponge"); got != nil {
		t.Errorf("Extract = %v, want nil", got)
	}
}

func TestTagNamesCoverDictionary(t *testing.T) {
	names := TagNames()
	if len(names) != 15 {
		t.Fatalf("dictionary size = %d, want 15", len(names))
	}
	if names[0] != "bamboo" || names[len(names)-1] != "plant_based" {
		t.Errorf("dictionary order changed: first %q last %q", names[0], names[len(names)-1])
	}
}
