package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Lyon", "lyon"},
		{"accents stripped", "Saint-Étienne", "saint-etienne"},
		{"apostrophe", "L'Haÿ-les-Roses", "l-hay-les-roses"},
		{"spaces", "Le Blanc-Mesnil", "le-blanc-mesnil"},
		{"cedilla", "Besançon", "besancon"},
		{"punctuation runs collapse", "Villeneuve-d'Ascq", "villeneuve-d-ascq"},
		{"leading and trailing noise", "  Nîmes  ", "nimes"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
