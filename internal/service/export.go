package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"recordsapi/internal/model"
	"recordsapi/internal/storage"
)

const exportContentType = "application/json"

// ExportService snapshots one record collection into object storage.
type ExportService interface {
	// Export writes every record of the kind as one JSON document and returns
	// its descriptor with a presigned download URL.
	Export(ctx context.Context) (*model.Export, error)
}

// Lister is the read side of a RecordService needed for exports.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type exportService[T any] struct {
	kind    model.Kind[T]
	records Lister[T]
	store   storage.Storage
	expiry  time.Duration
	now     func() time.Time
}

// NewExportService constructs an ExportService. A nil store yields a service
// that always fails with ErrStorageDisabled.
func NewExportService[T any](kind model.Kind[T], records Lister[T], store storage.Storage, urlExpiry time.Duration, opts ...Option) ExportService {
	o := buildOptions(opts)
	return &exportService[T]{kind: kind, records: records, store: store, expiry: urlExpiry, now: o.now}
}

// exportDocument is the JSON layout of an export object.
type exportDocument[T any] struct {
	Kind       string    `json:"kind"`
	ExportedAt time.Time `json:"exportedAt"`
	Count      int       `json:"count"`
	Items      []T       `json:"items"`
}

func (s *exportService[T]) Export(ctx context.Context) (*model.Export, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	items, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	body, err := json.Marshal(exportDocument[T]{
		Kind:       s.kind.Name,
		ExportedAt: now,
		Count:      len(items),
		Items:      items,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := path.Join("exports", s.kind.Collection,
		fmt.Sprintf("%s-%s.json", now.UTC().Format("20060102T150405Z"), uuid.NewString()))

	info, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: exportContentType,
		Metadata: map[string]string{
			"record-kind":  s.kind.Name,
			"record-count": strconv.Itoa(len(items)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, info.Key, s.expiry)
	if err != nil {
		// Rollback: an export nobody can download is useless.
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("presign export failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign export failed: %w", err)
	}

	return &model.Export{
		Kind:      s.kind.Name,
		Key:       info.Key,
		Count:     len(items),
		Size:      info.Size,
		CreatedAt: now,
		URL:       url,
	}, nil
}
