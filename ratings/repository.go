// Package ratings 提供 core.RatingsStore 的数据源实现：
// 内存仓库（借阅/归还事件驱动）、PostgreSQL 借阅表、Kafka 事件流。
package ratings

import (
	"context"
	"sync"

	"github.com/rushteam/bookrec/core"
)

// BorrowRating 是借阅行为折算的默认评分：借阅视为强正反馈。
const BorrowRating = 5.0

// Repository 是内存实现的评分仓库，维护 userID -> bookID -> rating。
//
// 约定：
//   - 0 或缺失 = 没有借阅 / 没有交互
//   - > 0      = 借阅过 / 喜欢，评分 1–5
//   - 同一 (user, book) 重复写入时后写覆盖
//
// 写入方（借阅事件、Kafka consumer）和读取方（推荐引擎取快照）可并发使用；
// Snapshot 返回深拷贝，引擎持有快照期间仓库继续写入互不影响。
type Repository struct {
	mu      sync.RWMutex
	ratings core.RatingsSnapshot
}

func NewRepository() *Repository {
	return &Repository{
		ratings: make(core.RatingsSnapshot),
	}
}

func (r *Repository) Name() string { return "memory_ratings" }

// AddRating 写入一条评分（后写覆盖）。
func (r *Repository) AddRating(userID, bookID string, rating float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureUser(userID)
	r.ratings[userID][bookID] = rating
}

// EnsureUser 确保用户存在（评分表可以为空）。
// 新注册但还没有借阅记录的读者也应出现在快照里。
func (r *Repository) EnsureUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureUser(userID)
}

// BorrowBook 记录一次借阅：视为强正反馈（评分 5）。
func (r *Repository) BorrowBook(userID, bookID string) {
	r.AddRating(userID, bookID, BorrowRating)
}

// ReturnBook 记录一次归还：评分归零（历史记录保持极简）。
func (r *Repository) ReturnBook(userID, bookID string) {
	r.AddRating(userID, bookID, 0)
}

// Rating 返回某个用户对某本书的评分，缺失时返回 0。
func (r *Repository) Rating(userID, bookID string) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratings.Rating(userID, bookID)
}

// HasUser 判断用户是否存在。
func (r *Repository) HasUser(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratings.Has(userID)
}

// Snapshot 实现 core.RatingsStore：返回当前评分的深拷贝。
func (r *Repository) Snapshot(_ context.Context) (core.RatingsSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ratings.Clone(), nil
}

func (r *Repository) ensureUser(userID string) {
	if _, ok := r.ratings[userID]; !ok {
		r.ratings[userID] = make(core.ItemRatings)
	}
}

var _ core.RatingsStore = (*Repository)(nil)
