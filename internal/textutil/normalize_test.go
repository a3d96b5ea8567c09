package textutil

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase passthrough", "angers", "angers"},
		{"Uppercase", "PARIS", "paris"},
		{"Accented uppercase", "Àngers", "angers"},
		{"Mixed accents", "Saint-Étienne", "saint-etienne"},
		{"Cedilla", "Besançon", "besancon"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple city", "Bordeaux", "bordeaux"},
		{"Accents and hyphen", "Saint-Étienne", "saint-etienne"},
		{"Spaces collapse", "Le  Havre", "le-havre"},
		{"Apostrophe", "L'Haÿ-les-Roses", "l-hay-les-roses"},
		{"Leading and trailing noise", " Paris ", "paris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercase word", "bordeaux", "Bordeaux"},
		{"Already capitalized", "Paris", "Paris"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capitalize(tt.input); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
