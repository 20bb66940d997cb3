package vizstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

// ValkeyStore caches illustrations in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "lungviz"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements lungviz.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.CodeCacheError, "valkey get failed", err)
	}
	return data, true, nil
}

// Put implements lungviz.Store.
func (s *ValkeyStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(valkey.BinaryString(data))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "valkey set failed", err)
	}
	return nil
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:img:%s", s.prefix, key)
}

var _ lungviz.Store = (*ValkeyStore)(nil)
