package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "fasttrack/pkg/errors"
)

// ErrNotFound 键不存在
var ErrNotFound = errors.New("记录不存在")

// Entry 前缀扫描返回的键值对
type Entry struct {
	Key   string
	Value []byte
}

// Store 通用键值存储接口
// Value 为 JSON 文档；ListByPrefix 按键升序返回
// 实现方须将底层错误包装为 pkgerrors.ErrStore
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	ListByPrefix(ctx context.Context, prefix string) ([]Entry, error)
}

func storeErr(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", pkgerrors.ErrStore, op, key, err)
}

// ── JSON 辅助 ──

func getJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: 解析 %s 失败: %w", pkgerrors.ErrStore, key, err)
	}
	return &v, nil
}

func putJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化 %s 失败: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

func listJSON[T any](ctx context.Context, s Store, prefix string) ([]T, error) {
	entries, err := s.ListByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, fmt.Errorf("%w: 解析 %s 失败: %w", pkgerrors.ErrStore, e.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func getRef(ctx context.Context, s Store, key string) (string, error) {
	ref, err := getJSON[refDoc](ctx, s, key)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func putRef(ctx context.Context, s Store, key, id string) error {
	return putJSON(ctx, s, key, refDoc{ID: id})
}

// refDoc 索引键的值
type refDoc struct {
	ID string `json:"id"`
}
