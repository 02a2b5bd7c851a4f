package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"songcatalog/internal/catalog"
	"songcatalog/internal/models"
	"songcatalog/internal/stats"
	"songcatalog/internal/testutil"
	"songcatalog/internal/validation"
)

// recordingAPI accepts every create and remembers it
type recordingAPI struct {
	created []models.SongInput
	fail    error
}

func (a *recordingAPI) List(ctx context.Context, filter catalog.Filter) ([]*models.Song, error) {
	return testutil.CreateCatalog(), nil
}

func (a *recordingAPI) Get(ctx context.Context, id string) (*models.Song, error) {
	return nil, &catalog.APIError{StatusCode: 404}
}

func (a *recordingAPI) Create(ctx context.Context, input models.SongInput) (*models.Song, error) {
	if a.fail != nil {
		return nil, a.fail
	}
	a.created = append(a.created, input)
	song := models.NewSongFromInput(input)
	song.ID = testutil.NewObjectID()
	return song, nil
}

func (a *recordingAPI) Update(ctx context.Context, id string, input models.SongInput) (*models.Song, error) {
	return nil, &catalog.APIError{StatusCode: 404}
}

func (a *recordingAPI) Delete(ctx context.Context, id string) error {
	return nil
}

func TestRenderSongs(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, renderSongs(&out, testutil.CreateCatalog()))

	assert.Contains(t, out.String(), testutil.TestSongID1)
	assert.Contains(t, out.String(), "3 songs")
}

func TestRenderSummary(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, renderSummary(&out, stats.Summarize(testutil.CreateCatalog(), 1)))

	assert.Contains(t, out.String(), "Most common genre: Rock")
	assert.Contains(t, out.String(), stats.OtherLabel)
	assert.Contains(t, out.String(), "66.7%")
}

func TestRenderSummary_Empty(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, renderSummary(&out, stats.Summarize(nil, 5)))

	assert.Contains(t, out.String(), "Most common genre: "+stats.NoValue)
}

func TestReportError_PrintsFieldMessages(t *testing.T) {
	var out bytes.Buffer
	errs := validation.Errors{"title": "Title is required", "genre": "Genre is required"}

	err := reportError(&out, errs)

	assert.Equal(t, error(errs), err)
	assert.Equal(t, "  Title: Title is required\n  Genre: Genre is required\n", out.String())
}

func TestInputFromFlags(t *testing.T) {
	flags := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	for _, field := range models.Fields {
		flags.String(field.String(), "", field.Label())
	}
	require.NoError(t, flags.Parse([]string{"--genre", "Jazz"}))

	input := inputFromFlags(flags, models.SongInput{Title: "A", Artist: "B", Album: "C", Genre: "Rock"})

	assert.Equal(t, models.SongInput{Title: "A", Artist: "B", Album: "C", Genre: "Jazz"}, input)
}

func TestReadSongInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"A","artist":"B","album":"C","genre":"D"}]`), 0o600))

	inputs, err := readSongInputs(path)
	require.NoError(t, err)
	assert.Equal(t, []models.SongInput{{Title: "A", Artist: "B", Album: "C", Genre: "D"}}, inputs)

	require.NoError(t, os.WriteFile(path, []byte(`{"title":"A"}`), 0o600))
	_, err = readSongInputs(path)
	assert.Error(t, err)
}

func TestImportSongs(t *testing.T) {
	api := &recordingAPI{}
	var out bytes.Buffer
	inputs := []models.SongInput{
		{Title: "A", Artist: "B", Album: "C", Genre: "D"},
		{Title: "Bad!", Artist: "B", Album: "C", Genre: "D"},
		{Title: "E", Artist: "F", Album: "G", Genre: "H"},
	}

	result, err := importSongs(context.Background(), &out, catalog.NewStore(api), rate.NewLimiter(rate.Inf, 1), inputs, false)

	require.NoError(t, err)
	assert.Equal(t, importResult{imported: 2, skipped: 1}, result)
	assert.Len(t, api.created, 2)
	assert.Contains(t, out.String(), "Song 2 skipped: Title can only contain letters, numbers, and spaces")
}

func TestImportSongs_DryRun(t *testing.T) {
	api := &recordingAPI{}

	result, err := importSongs(context.Background(), &bytes.Buffer{}, catalog.NewStore(api), rate.NewLimiter(rate.Inf, 1),
		[]models.SongInput{{Title: "A", Artist: "B", Album: "C", Genre: "D"}}, true)

	require.NoError(t, err)
	assert.Equal(t, 1, result.imported)
	assert.Empty(t, api.created)
}

func TestImportSongs_StopsOnAPIError(t *testing.T) {
	api := &recordingAPI{fail: errors.New("server unavailable")}

	result, err := importSongs(context.Background(), &bytes.Buffer{}, catalog.NewStore(api), rate.NewLimiter(rate.Inf, 1),
		[]models.SongInput{{Title: "A", Artist: "B", Album: "C", Genre: "D"}, {Title: "E", Artist: "F", Album: "G", Genre: "H"}}, false)

	assert.ErrorContains(t, err, "adding song 1")
	assert.Zero(t, result.imported)
}
