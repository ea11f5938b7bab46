package recall

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/bookrec/core"
)

// StoreRatingsAdapter 是基于 core.Store 接口的评分数据适配器。
// 实现 core.RatingsStore 接口，从 Redis/内存 KV 等存储中读取评分快照。
//
// key 约定：
//
//	单用户评分表：{KeyPrefix}:user:{userID} → JSON map[bookID]rating
//	所有用户列表：{KeyPrefix}:users        → JSON []userID
type StoreRatingsAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，空值默认 "ratings"
	KeyPrefix string
}

// NewStoreRatingsAdapter 创建一个基于 core.Store 的评分适配器。
func NewStoreRatingsAdapter(s core.Store, keyPrefix string) *StoreRatingsAdapter {
	if keyPrefix == "" {
		keyPrefix = "ratings"
	}
	return &StoreRatingsAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *StoreRatingsAdapter) Name() string {
	return "store_ratings_adapter"
}

// Snapshot 实现 core.RatingsStore：读取用户列表后批量拉取各自的评分表。
// 在列表中但评分 key 缺失的用户按空评分表处理（注册过但没有借阅记录）。
func (a *StoreRatingsAdapter) Snapshot(ctx context.Context) (core.RatingsSnapshot, error) {
	users, err := a.allUsers(ctx)
	if err != nil {
		return nil, err
	}

	snap := make(core.RatingsSnapshot, len(users))
	if len(users) == 0 {
		return snap, nil
	}

	keys := make([]string, 0, len(users))
	keyToUser := make(map[string]string, len(users))
	for _, userID := range users {
		key := a.KeyPrefix + ":user:" + userID
		keys = append(keys, key)
		keyToUser[key] = userID
	}

	data, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("batch get user ratings: %w", err)
	}

	for _, userID := range users {
		snap[userID] = core.ItemRatings{}
	}
	for key, raw := range data {
		var ratings core.ItemRatings
		if err := json.Unmarshal(raw, &ratings); err != nil {
			return nil, fmt.Errorf("unmarshal ratings of %s: %w", keyToUser[key], err)
		}
		snap[keyToUser[key]] = ratings
	}
	return snap, nil
}

func (a *StoreRatingsAdapter) allUsers(ctx context.Context) ([]string, error) {
	key := a.KeyPrefix + ":users"
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("unmarshal user list: %w", err)
	}
	return users, nil
}

// 确保实现 core.RatingsStore 接口
var _ core.RatingsStore = (*StoreRatingsAdapter)(nil)

// SeedRatings 辅助函数：把一份快照写进 Store，方便测试/原型准备数据。
func SeedRatings(ctx context.Context, adapter *StoreRatingsAdapter, snap core.RatingsSnapshot) error {
	users := make([]string, 0, len(snap))
	for userID, ratings := range snap {
		users = append(users, userID)

		data, err := json.Marshal(ratings)
		if err != nil {
			return err
		}
		key := adapter.KeyPrefix + ":user:" + userID
		if err := adapter.store.Set(ctx, key, data); err != nil {
			return err
		}
	}

	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return adapter.store.Set(ctx, adapter.KeyPrefix+":users", data)
}
