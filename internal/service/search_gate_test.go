package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsDocumentSearch(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{
			name:    "greeting is small talk",
			message: "Bonjour !",
			want:    false,
		},
		{
			name:    "acknowledgement is small talk",
			message: "ok merci",
			want:    false,
		},
		{
			name:    "document keyword always triggers search",
			message: "le rapport",
			want:    true,
		},
		{
			name:    "document keyword beats the small word count",
			message: "un fichier",
			want:    true,
		},
		{
			name:    "long interrogative sentence triggers search",
			message: "comment les congés sont-ils validés par le service RH",
			want:    true,
		},
		{
			name:    "short interrogative sentence does not",
			message: "pourquoi ça",
			want:    false,
		},
		{
			name:    "two words without keyword skip search",
			message: "à demain",
			want:    false,
		},
		{
			name:    "three plain words default to search",
			message: "bilan équipe support",
			want:    true,
		},
		{
			name:    "hyphenated interrogative counts",
			message: "est-ce que la salle de réunion est réservée vendredi",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsDocumentSearch(tt.message), "message: %q", tt.message)
		})
	}
}
