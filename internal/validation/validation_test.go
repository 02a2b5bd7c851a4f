package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songcatalog/internal/models"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   models.Field
		value   string
		wantMsg string
	}{
		{"empty title", models.FieldTitle, "", "Title is required"},
		{"whitespace title", models.FieldTitle, "   \t", "Title is required"},
		{"punctuation in title", models.FieldTitle, "Song#1", "Title can only contain letters, numbers, and spaces"},
		{"valid title", models.FieldTitle, "Song 1", ""},
		{"accented artist", models.FieldArtist, "Beyoncé", ""},
		{"hyphenated artist", models.FieldArtist, "Jay-Z", "Artist can only contain letters, numbers, and spaces"},
		{"empty album", models.FieldAlbum, "", "Album is required"},
		{"punctuation allowed in album", models.FieldAlbum, "A Night at the Opera (Remastered)", ""},
		{"punctuation allowed in genre", models.FieldGenre, "R&B", ""},
		{"empty genre", models.FieldGenre, " ", "Genre is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := ValidateField(tt.field, tt.value)
			if tt.wantMsg == "" {
				assert.Nil(t, fe)
				return
			}
			require.NotNil(t, fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.wantMsg, fe.Message)
			assert.Equal(t, tt.wantMsg, fe.Error())
		})
	}
}

func TestValidateSong_Valid(t *testing.T) {
	errs := ValidateSong(models.SongInput{Title: "Song 1", Artist: "Queen", Album: "Jazz", Genre: "Rock"})

	assert.True(t, errs.Valid())
	assert.Empty(t, errs)
}

func TestValidateSong_FieldsValidatedIndependently(t *testing.T) {
	errs := ValidateSong(models.SongInput{Title: "Song#1", Artist: "", Album: "X", Genre: ""})

	assert.False(t, errs.Valid())
	assert.Equal(t, Errors{
		"title":  "Title can only contain letters, numbers, and spaces",
		"artist": "Artist is required",
		"genre":  "Genre is required",
	}, errs)
	assert.Equal(t, "Title can only contain letters, numbers, and spaces; Artist is required; Genre is required", errs.Error())
}
