package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"hireflow/ats-engine/internal/models"
)

// ResumeVectorStore keeps one embedding per scored application so recruiters
// can search for candidates similar to a given one. It is an optional
// enhancement: when disabled, scoring proceeds without it.
type ResumeVectorStore interface {
	InitCollection() error
	UpsertResume(ctx context.Context, applicationID, jobID string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]models.SimilarCandidate, error)
	DeleteResume(ctx context.Context, applicationID string) error
}

type resumeVectorStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewResumeVectorStore(urlStr, apiKey, collectionName string) (ResumeVectorStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &resumeVectorStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ResumeVectorStore.
func (q *resumeVectorStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Resume vector collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResume implements ResumeVectorStore.
func (q *resumeVectorStore) UpsertResume(ctx context.Context, applicationID, jobID string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(applicationID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"application_id": applicationID,
			"job_id":         jobID,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert resume point: %w", err)
	}

	return nil
}

// SearchSimilar implements ResumeVectorStore. A non-empty jobID restricts the
// search to applications for that job.
func (q *resumeVectorStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, jobID string, limit int) ([]models.SimilarCandidate, error) {
	var filter *qdrant.Filter
	if jobID != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_id", jobID),
			},
		}
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.SimilarCandidate
	for _, point := range searchResult {
		payload := point.Payload

		result := models.SimilarCandidate{
			Score: point.Score,
		}

		if appID, ok := payload["application_id"]; ok {
			if val, ok := appID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ApplicationID = val.StringValue
			}
		}

		if jid, ok := payload["job_id"]; ok {
			if val, ok := jid.GetKind().(*qdrant.Value_StringValue); ok {
				result.JobID = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteResume implements ResumeVectorStore.
func (q *resumeVectorStore) DeleteResume(ctx context.Context, applicationID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("application_id", applicationID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete resume point: %w", err)
	}

	return nil
}
