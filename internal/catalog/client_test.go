package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songcatalog/internal/models"
	"songcatalog/internal/testutil"
)

func newTestClient(t *testing.T) (*testutil.MockHTTPServer, *Client) {
	server := testutil.NewMockHTTPServer()
	t.Cleanup(server.Close)
	return server, NewClient(server.URL()+"/", 5*time.Second)
}

func TestClient_List(t *testing.T) {
	server, client := newTestClient(t)
	server.On(http.MethodGet, "/api/v1/songs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Rock", r.URL.Query().Get("genre"))
		testutil.WriteJSON(w, http.StatusOK, testutil.CreateCatalog()[:2])
	})

	songs, err := client.List(context.Background(), Filter{Genre: "Rock"})
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, testutil.TestSongID1, songs[0].IDHex())
}

func TestClient_Get(t *testing.T) {
	server, client := newTestClient(t)
	server.On(http.MethodGet, "/api/v1/songs/"+testutil.TestSongID1, func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, testutil.CreateTestSong())
	})

	song, err := client.Get(context.Background(), testutil.TestSongID1)
	require.NoError(t, err)
	assert.Equal(t, "Test Song", song.Title)

	_, err = client.Get(context.Background(), testutil.TestSongID2)
	assert.True(t, IsNotFound(err))
}

func TestClient_Create(t *testing.T) {
	server, client := newTestClient(t)
	server.On(http.MethodPost, "/api/v1/songs", func(w http.ResponseWriter, r *http.Request) {
		var input models.SongInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		song := models.NewSongFromInput(input)
		song.ID = testutil.NewObjectID()
		testutil.WriteJSON(w, http.StatusCreated, song)
	})

	song, err := client.Create(context.Background(), models.SongInput{Title: "A", Artist: "B", Album: "C", Genre: "D"})
	require.NoError(t, err)
	assert.NotEmpty(t, song.IDHex())
	assert.Equal(t, "A", song.Title)
}

func TestClient_ValidationError(t *testing.T) {
	server, client := newTestClient(t)
	server.On(http.MethodPost, "/api/v1/songs", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": map[string]string{"title": "Title is required"},
		})
	})

	_, err := client.Create(context.Background(), models.SongInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.Equal(t, "Title is required", apiErr.Fields["title"])
	assert.False(t, IsNotFound(err))
}

func TestClient_UpdateAndDelete(t *testing.T) {
	server, client := newTestClient(t)
	path := "/api/v1/songs/" + testutil.TestSongID1
	server.On(http.MethodPut, path, func(w http.ResponseWriter, r *http.Request) {
		var input models.SongInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		song := testutil.CreateTestSong()
		song.Apply(input)
		testutil.WriteJSON(w, http.StatusOK, song)
	})
	server.On(http.MethodDelete, path, func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Song deleted", "id": testutil.TestSongID1})
	})

	song, err := client.Update(context.Background(), testutil.TestSongID1, models.SongInput{Title: "New", Artist: "B", Album: "C", Genre: "D"})
	require.NoError(t, err)
	assert.Equal(t, "New", song.Title)
	assert.Equal(t, testutil.TestSongID1, song.IDHex())

	assert.NoError(t, client.Delete(context.Background(), testutil.TestSongID1))
}

func TestClient_TransportError(t *testing.T) {
	server, client := newTestClient(t)
	server.Close()

	_, err := client.List(context.Background(), Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list songs")
}
