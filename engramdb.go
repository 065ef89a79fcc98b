// Package engramdb implements a single-node, embeddable memory-graph store
// for AI agents: engrams (atomic units of knowledge), typed connections
// between them, and the collection/agent/context entities that group and
// scope access to them. A DB owns the persistent six-family key/value
// store plus every in-memory index derived from it — the relationship
// graph, the attribute indexes, and the embedding/vector-search pipeline —
// and keeps them synchronized with each mutation (spec §5, single-writer).
package engramdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/scrypster/engramdb/internal/attrindex"
	"github.com/scrypster/engramdb/internal/config"
	"github.com/scrypster/engramdb/internal/embedding"
	"github.com/scrypster/engramdb/internal/queryengine"
	"github.com/scrypster/engramdb/internal/relindex"
	"github.com/scrypster/engramdb/internal/storage"
	"github.com/scrypster/engramdb/internal/vectorindex"
	"github.com/scrypster/engramdb/pkg/types"
)

// DB is an open engramdb instance. None of its derived indexes are
// persisted; Open always rebuilds them from a full scan of the store, and
// Import rebuilds them again after installing a new envelope.
type DB struct {
	mu    sync.Mutex
	cfg   *config.Config
	store *storage.Store

	rel        *relindex.Index
	source     *attrindex.SourceIndex
	confidence *attrindex.ConfidenceIndex
	metadata   *attrindex.MetadataIndex
	text       *attrindex.TextIndex
	temporal   *attrindex.TemporalIndex
	importance *attrindex.ImportanceIndex

	vectors  *vectorindex.Index
	embedder *embedding.Service
	reducer  embedding.Reducer // nil unless cfg.Embedding.ReductionMethod is set

	query *queryengine.Engine
}

// Open opens or creates a store at cfg.Storage.DataPath, wires the
// embedding pipeline and vector index according to cfg.Embedding/cfg.Index,
// and rebuilds every derived index from the store's contents. A nil cfg
// loads defaults.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load("")
		if err != nil {
			return nil, err
		}
	}

	store, err := storage.Open(cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}

	registry := embedding.NewRegistry()
	dims, err := registry.Resolve(cfg.Embedding.Model, 0)
	if err != nil {
		store.Close()
		return nil, err
	}

	svc, err := embedding.NewService(
		embedding.NewStubEmbedder(cfg.Embedding.Model, dims),
		cfg.Embedding.CacheSize,
		embedding.CircuitBreakerConfig{
			MaxFailures:          uint32(cfg.Embedding.CircuitMaxFailures),
			Timeout:              time.Duration(cfg.Embedding.CircuitTimeoutSecs) * time.Second,
			HalfOpenMaxSuccesses: 2,
		},
		embedding.RateLimitConfig{
			RequestsPerSecond: cfg.Embedding.RateLimitPerSecond,
			Burst:             cfg.Embedding.RateLimitBurst,
		},
	)
	if err != nil {
		store.Close()
		return nil, err
	}

	reducer, err := newReducer(cfg.Embedding, dims)
	if err != nil {
		store.Close()
		return nil, err
	}
	indexDims := dims
	if reducer != nil {
		svc.SetReducer(reducer)
		if reducer.Trained() {
			indexDims = reducer.TargetDimensions()
		}
	}

	db := &DB{
		cfg:      cfg,
		store:    store,
		embedder: svc,
		reducer:  reducer,
	}
	db.resetIndexes(indexDims)

	if err := db.rebuildIndexes(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return db, nil
}

// resetIndexes discards every derived index and replaces it with an empty
// one, fixing the vector index to dimensions.
func (db *DB) resetIndexes(dimensions int) {
	db.rel = relindex.New()
	db.source = attrindex.NewSourceIndex()
	db.confidence = attrindex.NewConfidenceIndex()
	db.metadata = attrindex.NewMetadataIndex()
	db.text = attrindex.NewTextIndex()
	db.temporal = attrindex.NewTemporalIndex()
	db.importance = attrindex.NewImportanceIndex()
	db.vectors = vectorindex.NewIndexWithConfig(
		dimensions,
		vectorindex.ANNConfig{M: db.cfg.Index.M, EfSearch: db.cfg.Index.EfSearch},
		db.cfg.Index.SizeThreshold,
	)
	db.query = queryengine.New(db.store, queryengine.AttributeIndexes{
		Source:     db.source,
		Confidence: db.confidence,
		Metadata:   db.metadata,
		Text:       db.text,
	}, db.rel)
}

// rebuildIndexes scans every engram and connection in the store and
// re-populates the relationship, attribute, and (when enabled) vector
// indexes from scratch (spec §8 invariant 1).
func (db *DB) rebuildIndexes(ctx context.Context) error {
	engramIDs, err := db.store.ListEngramIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range engramIDs {
		e, found, err := db.store.GetEngram(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		db.indexEngram(e)
		if db.cfg.Features.EnableVectorSearch {
			if err := db.embedAndIndex(ctx, e); err != nil {
				return err
			}
		}
	}

	connIDs, err := db.store.ListConnectionIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range connIDs {
		c, found, err := db.store.GetConnection(ctx, id)
		if err != nil {
			return err
		}
		if found {
			db.rel.Add(c)
		}
	}
	return nil
}

func (db *DB) indexEngram(e *types.Engram) {
	db.source.Add(e.Source, e.ID)
	db.confidence.Add(e.Confidence, e.ID)
	db.text.Add(e.Content, e.ID)
	db.temporal.Add(e.CreatedAt, e.ID)
	db.importance.Set(e.ID, e.Importance)
	for k, v := range e.Metadata {
		db.metadata.Add(k, v, e.ID)
	}
}

func (db *DB) deindexEngram(e *types.Engram) {
	db.source.Remove(e.Source, e.ID)
	db.confidence.Remove(e.Confidence, e.ID)
	db.text.Remove(e.Content, e.ID)
	db.temporal.Remove(e.CreatedAt, e.ID)
	db.importance.Remove(e.ID)
	for k, v := range e.Metadata {
		db.metadata.Remove(k, v, e.ID)
	}
}

// embedAndIndex computes e's embedding (reduced, when a trained reducer is
// configured) and adds it to the vector index, replacing any prior entry
// under the same id.
func (db *DB) embedAndIndex(ctx context.Context, e *types.Engram) error {
	db.vectors.Remove(e.ID)
	emb, err := db.embedder.EmbedReduced(ctx, e.Content)
	if err != nil {
		return err
	}
	return db.vectors.Add(e.ID, emb)
}

// newReducer constructs the dimensionality reducer cfg selects, or nil
// when cfg.ReductionMethod is unset. truncation needs no training and is
// ready to use immediately; random_projection and pca are constructed
// untrained and need TrainReducer called against existing data before
// they activate (EmbedReduced falls back to raw embeddings until then).
func newReducer(cfg config.EmbeddingConfig, rawDims int) (embedding.Reducer, error) {
	switch cfg.ReductionMethod {
	case "":
		return nil, nil
	case "truncation":
		return embedding.NewTruncationReducer(rawDims, cfg.ReductionTargetDimensions)
	case "random_projection":
		return embedding.NewRandomProjectionReducer(cfg.ReductionSeed), nil
	case "pca":
		return embedding.NewPCAReducer(), nil
	default:
		return nil, fmt.Errorf("engramdb: unknown embedding reduction method %q", cfg.ReductionMethod)
	}
}

// TrainReducer trains the configured random_projection or pca reducer
// against a sample of up to sampleSize engrams already in the store (0
// meaning every engram), installs it on the embedding pipeline, and
// rebuilds every derived index so the vector index switches over to the
// reduced dimensionality. It fails if no reducer is configured, or if
// the configured reducer needs no training (truncation is ready at
// Open).
func (db *DB) TrainReducer(ctx context.Context, sampleSize int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trainable, ok := db.reducer.(embedding.Trainable)
	if !ok {
		return embedding.ErrUntrained
	}

	ids, err := db.store.ListEngramIDs(ctx)
	if err != nil {
		return err
	}
	if sampleSize > 0 && sampleSize < len(ids) {
		ids = ids[:sampleSize]
	}

	batch := make([]embedding.Embedding, 0, len(ids))
	for _, id := range ids {
		e, found, err := db.store.GetEngram(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		emb, err := db.embedder.Embed(ctx, e.Content)
		if err != nil {
			return err
		}
		batch = append(batch, emb)
	}

	if err := trainable.Train(batch, db.cfg.Embedding.ReductionTargetDimensions); err != nil {
		return err
	}
	db.embedder.SetReducer(db.reducer)

	db.resetIndexes(db.reducer.TargetDimensions())
	return db.rebuildIndexes(ctx)
}

// Close releases the underlying store handle.
func (db *DB) Close() error {
	return db.store.Close()
}

// Compact performs a best-effort reclamation of unused disk space; it has
// no semantic effect on the entities the store holds.
func (db *DB) Compact(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.store.Compact(ctx)
}
