// Package library 是面向图书馆前台的展示层适配：
// 把引擎输出的 (书目 ID, 分数) 换成带书目元数据与匹配度的推荐卡片。
package library

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/bookrec/core"
)

// Book 是书目元数据。
type Book struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre,omitempty"`
}

// BookStore 提供书目元数据查询。查不到的 ID 直接不出现在返回 map 中，
// 不算错误：评分数据和书目库各自演进，悬空 ID 是常态。
type BookStore interface {
	// BatchGet 批量查询书目，返回 bookID -> Book
	BatchGet(ctx context.Context, ids []string) (map[string]Book, error)
}

// StoreBookAdapter 基于 core.Store 实现 BookStore。
//
// key 约定：book:{bookID} → JSON Book
type StoreBookAdapter struct {
	store core.Store

	// KeyPrefix 空值默认 "book"
	KeyPrefix string
}

func NewStoreBookAdapter(s core.Store, keyPrefix string) *StoreBookAdapter {
	if keyPrefix == "" {
		keyPrefix = "book"
	}
	return &StoreBookAdapter{store: s, KeyPrefix: keyPrefix}
}

// BatchGet 实现 BookStore。存储中缺失或无法解析的条目跳过。
func (a *StoreBookAdapter) BatchGet(ctx context.Context, ids []string) (map[string]Book, error) {
	if len(ids) == 0 {
		return map[string]Book{}, nil
	}

	keys := make([]string, 0, len(ids))
	keyToID := make(map[string]string, len(ids))
	for _, id := range ids {
		key := a.KeyPrefix + ":" + id
		keys = append(keys, key)
		keyToID[key] = id
	}

	data, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("batch get books: %w", err)
	}

	books := make(map[string]Book, len(data))
	for key, raw := range data {
		var b Book
		if err := json.Unmarshal(raw, &b); err != nil {
			continue
		}
		if b.ID == "" {
			b.ID = keyToID[key]
		}
		books[keyToID[key]] = b
	}
	return books, nil
}

// SeedBooks 辅助函数：把书目写进 Store，方便测试/原型准备数据。
func SeedBooks(ctx context.Context, adapter *StoreBookAdapter, books []Book) error {
	kvs := make(map[string][]byte, len(books))
	for _, b := range books {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		kvs[adapter.KeyPrefix+":"+b.ID] = data
	}
	return adapter.store.BatchSet(ctx, kvs)
}

var _ BookStore = (*StoreBookAdapter)(nil)
