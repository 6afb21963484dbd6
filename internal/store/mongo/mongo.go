// Package mongo stores marketplace records in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/spigell/hire-matcher/internal/marketplace"
	"github.com/spigell/hire-matcher/internal/store"
)

const pingTimeout = 5 * time.Second

// Store reads and writes the marketplace collections. Documents are read as bson.M and
// pass through the marketplace decoders, so malformed documents never reach the scorers.
type Store struct {
	client *driver.Client

	users       *driver.Collection
	jobs        *driver.Collection
	seekerPrefs *driver.Collection
	jobPrefs    *driver.Collection

	logger *zap.Logger
}

// Connect opens a client for uri and verifies the deployment is reachable.
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetRetryReads(true).
		SetRetryWrites(true)

	client, err := driver.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return New(client, client.Database(database), logger), nil
}

func New(client *driver.Client, db *driver.Database, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		client:      client,
		users:       db.Collection(store.Users),
		jobs:        db.Collection(store.Jobs),
		seekerPrefs: db.Collection(store.JobSeekerPreferences),
		jobPrefs:    db.Collection(store.StartupJobPreferences),
		logger:      logger.With(zap.String("database", db.Name())),
	}
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique lookup indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(field string) driver.IndexModel {
		return driver.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	indexes := map[*driver.Collection][]driver.IndexModel{
		s.users:       {unique("id"), {Keys: bson.D{{Key: "role", Value: 1}}}},
		s.jobs:        {unique("id"), {Keys: bson.D{{Key: "status", Value: 1}}}, {Keys: bson.D{{Key: "posted_by", Value: 1}}}},
		s.seekerPrefs: {unique("user_id")},
		s.jobPrefs:    {unique("job_id")},
	}

	for collection, models := range indexes {
		if _, err := collection.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", collection.Name(), err)
		}
	}

	return nil
}

func (s *Store) User(ctx context.Context, id string) (*marketplace.User, error) {
	doc, err := findOne(ctx, s.users, bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	return marketplace.DecodeUser(doc)
}

func (s *Store) UsersByRole(ctx context.Context, role string, limit int) ([]*marketplace.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return findMany(ctx, s, s.users, bson.M{"role": role}, opts, marketplace.DecodeUser)
}

func (s *Store) Job(ctx context.Context, id string) (*marketplace.Job, error) {
	doc, err := findOne(ctx, s.jobs, bson.M{"id": id})
	if err != nil {
		return nil, err
	}
	return marketplace.DecodeJob(doc)
}

func (s *Store) ActiveJobs(ctx context.Context, limit int) ([]*marketplace.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return findMany(ctx, s, s.jobs, bson.M{"status": marketplace.JobStatusActive}, opts, marketplace.DecodeJob)
}

func (s *Store) JobsByOwner(ctx context.Context, ownerID string) ([]*marketplace.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findMany(ctx, s, s.jobs, bson.M{"posted_by": ownerID}, opts, marketplace.DecodeJob)
}

func (s *Store) SeekerPreferences(ctx context.Context, userID string) (*marketplace.JobSeekerPreferences, error) {
	doc, err := findOne(ctx, s.seekerPrefs, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	return marketplace.DecodeSeekerPreferences(doc)
}

func (s *Store) SeekerPreferencesFor(ctx context.Context, userIDs []string) (map[string]*marketplace.JobSeekerPreferences, error) {
	out := make(map[string]*marketplace.JobSeekerPreferences, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	prefs, err := findMany(ctx, s, s.seekerPrefs, bson.M{"user_id": bson.M{"$in": userIDs}}, options.Find(), marketplace.DecodeSeekerPreferences)
	if err != nil {
		return nil, err
	}
	for _, p := range prefs {
		out[p.UserID] = p
	}
	return out, nil
}

func (s *Store) UpsertSeekerPreferences(ctx context.Context, p *marketplace.JobSeekerPreferences) error {
	return replace(ctx, s.seekerPrefs, bson.M{"user_id": p.UserID}, p)
}

func (s *Store) JobPreferences(ctx context.Context, jobID string) (*marketplace.StartupJobPreferences, error) {
	doc, err := findOne(ctx, s.jobPrefs, bson.M{"job_id": jobID})
	if err != nil {
		return nil, err
	}
	return marketplace.DecodeJobPreferences(doc)
}

func (s *Store) UpsertJobPreferences(ctx context.Context, p *marketplace.StartupJobPreferences) error {
	return replace(ctx, s.jobPrefs, bson.M{"job_id": p.JobID}, p)
}

func findOne(ctx context.Context, collection *driver.Collection, filter bson.M) (marketplace.Document, error) {
	var doc bson.M
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding in %s: %w", collection.Name(), err)
	}
	return marketplace.Document(doc), nil
}

// findMany decodes every document matching filter. Documents that fail validation are
// logged and skipped so a single bad record cannot break a listing.
func findMany[T any](
	ctx context.Context,
	s *Store,
	collection *driver.Collection,
	filter bson.M,
	opts *options.FindOptionsBuilder,
	decode func(marketplace.Document) (*T, error),
) ([]*T, error) {
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []*T
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding %s document: %w", collection.Name(), err)
		}

		record, err := decode(marketplace.Document(doc))
		if err != nil {
			s.logger.Warn("skipping invalid document",
				zap.String("collection", collection.Name()),
				zap.Any("_id", doc["_id"]),
				zap.Error(err),
			)
			continue
		}
		out = append(out, record)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection.Name(), err)
	}

	return out, nil
}

func replace(ctx context.Context, collection *driver.Collection, filter bson.M, record any) error {
	_, err := collection.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting into %s: %w", collection.Name(), err)
	}
	return nil
}
