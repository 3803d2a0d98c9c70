package vectordb

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/legalchat/legalchat/internal/config"
)

// MilvusIndex serves nearest-neighbor search from a Milvus collection whose
// int64 primary keys are positional corpus indices.
type MilvusIndex struct {
	client     client.Client
	collection string
	metricType entity.MetricType
}

// NewMilvusIndex connects to Milvus and verifies the collection exists.
func NewMilvusIndex(ctx context.Context, cfg config.IndexConfig) (*MilvusIndex, error) {
	c, err := client.NewClient(ctx, client.Config{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: connect milvus: %v", ErrIndexUnavailable, err)
	}
	has, err := c.HasCollection(ctx, cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: check collection: %v", ErrIndexUnavailable, err)
	}
	if !has {
		return nil, fmt.Errorf("%w: collection %s not found", ErrIndexUnavailable, cfg.Collection)
	}
	if err := c.LoadCollection(ctx, cfg.Collection, false); err != nil {
		return nil, fmt.Errorf("%w: load collection: %v", ErrIndexUnavailable, err)
	}
	metricType := entity.MetricType(cfg.MetricType)
	if metricType == "" {
		metricType = entity.IP
	}
	return &MilvusIndex{client: c, collection: cfg.Collection, metricType: metricType}, nil
}

// Search implements Index.
func (m *MilvusIndex) Search(ctx context.Context, vector []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	sp, err := entity.NewIndexFlatSearchParam()
	if err != nil {
		return nil, fmt.Errorf("%w: search params: %v", ErrIndexUnavailable, err)
	}
	results, err := m.client.Search(ctx, m.collection, nil, "", nil,
		[]entity.Vector{entity.FloatVector(vector)}, "vector", m.metricType, k, sp)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrIndexUnavailable, err)
	}

	var hits []Hit
	for _, result := range results {
		ids, ok := result.IDs.(*entity.ColumnInt64)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected id column type %T", ErrIndexUnavailable, result.IDs)
		}
		for i, id := range ids.Data() {
			hits = append(hits, Hit{Index: id, Distance: result.Scores[i]})
		}
	}
	return hits, nil
}

// Close releases the Milvus connection.
func (m *MilvusIndex) Close() error { return m.client.Close() }
