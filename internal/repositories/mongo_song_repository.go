package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"songcatalog/internal/models"
)

// mongoSongRepository implements SongRepository interface using MongoDB
type mongoSongRepository struct {
	collection *mongo.Collection
}

// NewMongoSongRepository creates a new MongoDB-backed song repository
func NewMongoSongRepository(db *models.Database) SongRepository {
	return &mongoSongRepository{
		collection: db.DB.Collection(models.SongsCollection),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objectID, nil
}

// Create inserts a new song and assigns its ID
func (r *mongoSongRepository) Create(ctx context.Context, song *models.Song) error {
	now := time.Now()
	song.ID = primitive.NewObjectID()
	song.SchemaVersion = models.CurrentSchemaVersion
	song.CreatedAt = now
	song.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, song); err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}

// Update replaces an existing song
func (r *mongoSongRepository) Update(ctx context.Context, song *models.Song) error {
	if song.ID.IsZero() {
		return fmt.Errorf("song ID is required for update")
	}

	song.UpdatedAt = time.Now()
	song.SchemaVersion = models.CurrentSchemaVersion

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": song.ID}, song)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSongNotFound
	}
	return nil
}

// FindByID finds a song by its ObjectID
func (r *mongoSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var song models.Song
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&song)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find song by ID: %w", err)
	}

	return &song, nil
}

// List returns songs matching the filter, oldest first
func (r *mongoSongRepository) List(ctx context.Context, filter SongFilter) ([]*models.Song, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer cursor.Close(ctx)

	songs := make([]*models.Song, 0)
	for cursor.Next(ctx) {
		var song models.Song
		if err := cursor.Decode(&song); err != nil {
			slog.Error("Failed to decode song", "error", err)
			continue
		}
		songs = append(songs, &song)
	}

	return songs, cursor.Err()
}

// buildFilter translates a SongFilter into a MongoDB query document
func buildFilter(filter SongFilter) bson.M {
	query := bson.M{}
	for field, value := range filter.Values() {
		query[field.String()] = containsPattern(value)
	}

	if filter.Query != "" {
		pattern := containsPattern(filter.Query)
		anyField := make([]bson.M, 0, len(models.Fields))
		for _, field := range models.Fields {
			anyField = append(anyField, bson.M{field.String(): pattern})
		}
		query["$or"] = anyField
	}
	return query
}

func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// DeleteByID deletes a song by its ID
func (r *mongoSongRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrSongNotFound
	}
	return nil
}

// Count returns the total number of songs in the collection
func (r *mongoSongRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}
