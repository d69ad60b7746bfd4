package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recordsapi/internal/model"
	"recordsapi/internal/storage"
	storeMocks "recordsapi/internal/storage/mocks"
)

type staticLister[T any] struct {
	items []T
	err   error
}

func (l staticLister[T]) List(context.Context) ([]T, error) { return l.items, l.err }

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()
	students := []model.Student{
		{Meta: model.Meta{ID: 1, CreatedAt: t0}, Name: "Ann", Email: "ann@x.com"},
		{Meta: model.Meta{ID: 2, CreatedAt: t0}, Name: "Bob", Email: "bob@x.com"},
	}
	isExportKey := func(key string) bool {
		return strings.HasPrefix(key, "exports/students/20250901T080000Z-") && strings.HasSuffix(key, ".json")
	}

	tests := []struct {
		name       string
		lister     Lister[model.Student]
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, exp *model.Export)
	}{
		{
			name:   "happy path",
			lister: staticLister[model.Student]{items: students},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.MatchedBy(isExportKey), mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
					return o.ContentType == "application/json" && o.Size > 0 && o.Metadata["record-count"] == "2"
				})).Return(func(_ context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					var doc struct {
						Kind  string          `json:"kind"`
						Count int             `json:"count"`
						Items []model.Student `json:"items"`
					}
					require.NoError(t, json.NewDecoder(r).Decode(&doc))
					assert.Equal(t, "student", doc.Kind)
					assert.Equal(t, 2, doc.Count)
					assert.Len(t, doc.Items, 2)
					return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
				}, nil)
				mStore.On("PresignGet", ctx, mock.MatchedBy(isExportKey), 15*time.Minute).
					Return("https://minio.local/records/exports/students/x.json?sig=1", nil)
			},
			check: func(t *testing.T, exp *model.Export) {
				assert.Equal(t, "student", exp.Kind)
				assert.Equal(t, 2, exp.Count)
				assert.True(t, exp.Size > 0)
				assert.True(t, isExportKey(exp.Key))
				assert.Equal(t, t0, exp.CreatedAt)
				assert.Contains(t, exp.URL, "sig=1")
			},
		},
		{
			name:       "list error",
			lister:     staticLister[model.Student]{err: errors.New("db fail")},
			setupMocks: func(mStore *storeMocks.MockStorage) {},
			wantErrMsg: "db fail",
		},
		{
			name:   "upload error",
			lister: staticLister[model.Student]{items: students},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload export: storage fail",
		},
		{
			name:   "presign error rolls back",
			lister: staticLister[model.Student]{items: students},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mStore.On("PresignGet", ctx, mock.Anything, mock.Anything).Return("", errors.New("sign fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(isExportKey)).Return(nil)
			},
			wantErrMsg: "presign export failed: sign fail",
		},
		{
			name:   "presign error with failed rollback",
			lister: staticLister[model.Student]{items: students},
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mStore.On("PresignGet", ctx, mock.Anything, mock.Anything).Return("", errors.New("sign fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			tt.setupMocks(mStore)
			svc := NewExportService[model.Student](model.StudentKind, tt.lister, mStore, 15*time.Minute,
				WithClock(func() time.Time { return t0 }))

			exp, err := svc.Export(ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
				assert.Nil(t, exp)
			} else {
				require.NoError(t, err)
				tt.check(t, exp)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestExportService_Disabled(t *testing.T) {
	svc := NewExportService[model.Event](model.EventKind, staticLister[model.Event]{}, nil, time.Minute)

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, ErrStorageDisabled)
}
