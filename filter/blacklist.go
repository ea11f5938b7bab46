package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/bookrec/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉下架/封禁的书目。
type BlacklistFilter struct {
	// BookIDs 是内存中的黑名单书目 ID 列表
	BookIDs []string

	// Store 用于从存储中读取黑名单（可选），key 下存 JSON []bookID
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(bookIDs []string, store core.Store, key string) *BlacklistFilter {
	return &BlacklistFilter{
		BookIDs: bookIDs,
		Store:   store,
		Key:     key,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 从内存列表检查
	for _, id := range f.BookIDs {
		if item.ID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		var blacklist []string
		if err := json.Unmarshal(data, &blacklist); err != nil {
			return false, err
		}
		for _, id := range blacklist {
			if item.ID == id {
				return true, nil
			}
		}
	}

	return false, nil
}
