// Package qdrant provides an ArchiveCatalog implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/infrastructure/config"
)

// VectorSize is the dimension of a resource point: archive, record, frame.
const VectorSize = 3

// scrollPageSize bounds a single Scroll call when listing.
const scrollPageSize = 256

// pointNamespace seeds the name-based point IDs.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cmat:resources"))

// Repository implements ports.ArchiveCatalog using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     VectorSize,
					Distance: pb.Distance_Euclid,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// Lookup retrieves the handle registered for a ref.
func (r *Repository) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	resp, err := r.points.Get(ctx, &pb.GetPoints{
		CollectionName: r.collection,
		Ids:            []*pb.PointId{pointID(ref)},
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
		WithVectors: &pb.WithVectorsSelector{
			SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: false},
		},
	})
	if err != nil {
		return entities.Handle{}, fmt.Errorf("getting point: %w", err)
	}

	if len(resp.Result) == 0 {
		return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
	}

	return pointToHandle(resp.Result[0].Payload), nil
}

// Register upserts handles. Re-registering a ref replaces its location.
func (r *Repository) Register(ctx context.Context, handles []entities.Handle) error {
	if len(handles) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(handles))
	for _, h := range handles {
		points = append(points, handleToPoint(h))
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           pb.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// List returns registered handles in ref order, optionally for one archive.
// Points are stored by UUID, so every page is scrolled before sorting and
// the limit applies afterwards. A non-positive limit returns everything.
func (r *Repository) List(ctx context.Context, archive int, limit int) ([]entities.Handle, error) {
	var handles []entities.Handle
	var offset *pb.PointId

	for {
		resp, err := r.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: r.collection,
			Limit:          pb.PtrOf(uint32(scrollPageSize)),
			Offset:         offset,
			Filter:         archiveFilter(archive),
			WithPayload: &pb.WithPayloadSelector{
				SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
			},
			WithVectors: &pb.WithVectorsSelector{
				SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: false},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("scrolling points: %w", err)
		}

		for _, point := range resp.Result {
			handles = append(handles, pointToHandle(point.Payload))
		}

		offset = resp.NextPageOffset
		if offset == nil {
			break
		}
	}

	sortHandles(handles)
	if limit > 0 && len(handles) > limit {
		handles = handles[:limit]
	}
	return handles, nil
}

// DeleteAll removes every registered handle.
func (r *Repository) DeleteAll(ctx context.Context) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           pb.PtrOf(true),
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting all points: %w", err)
	}

	return nil
}

// DeleteCollection drops the collection.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return nil
}

// Count returns the total number of registered handles.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// pointID derives a stable point ID from the ref.
func pointID(ref entities.ResourceRef) *pb.PointId {
	id := uuid.NewSHA1(pointNamespace, []byte(ref.String()))
	return &pb.PointId{
		PointIdOptions: &pb.PointId_Uuid{Uuid: id.String()},
	}
}

// handleToPoint converts a handle to a Qdrant point.
func handleToPoint(h entities.Handle) *pb.PointStruct {
	return &pb.PointStruct{
		Id: pointID(h.Ref),
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: []float32{float32(h.Ref.Archive), float32(h.Ref.Record), float32(h.Ref.Frame)},
				},
			},
		},
		Payload: map[string]*pb.Value{
			"archive":  {Kind: &pb.Value_IntegerValue{IntegerValue: int64(h.Ref.Archive)}},
			"record":   {Kind: &pb.Value_IntegerValue{IntegerValue: int64(h.Ref.Record)}},
			"frame":    {Kind: &pb.Value_IntegerValue{IntegerValue: int64(h.Ref.Frame)}},
			"location": {Kind: &pb.Value_StringValue{StringValue: h.Location}},
		},
	}
}

// pointToHandle converts a Qdrant payload to a handle.
func pointToHandle(payload map[string]*pb.Value) entities.Handle {
	return entities.Handle{
		Ref: entities.Ref(
			int(getIntValue(payload, "archive")),
			int(getIntValue(payload, "record")),
			int(getIntValue(payload, "frame")),
		),
		Location: getStringValue(payload, "location"),
	}
}

// archiveFilter restricts a scroll to one archive. Negative means no filter.
func archiveFilter(archive int) *pb.Filter {
	if archive < 0 {
		return nil
	}
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: "archive",
						Match: &pb.Match{
							MatchValue: &pb.Match_Integer{
								Integer: int64(archive),
							},
						},
					},
				},
			},
		},
	}
}

func sortHandles(handles []entities.Handle) {
	sort.Slice(handles, func(i, j int) bool {
		a, b := handles[i].Ref, handles[j].Ref
		if a.Archive != b.Archive {
			return a.Archive < b.Archive
		}
		if a.Record != b.Record {
			return a.Record < b.Record
		}
		return a.Frame < b.Frame
	})
}

// Helper functions for payload extraction.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func getIntValue(payload map[string]*pb.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}
