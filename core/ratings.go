package core

// ItemRatings 是单个用户的评分表：bookID -> rating。
// 约定 rating ∈ [0,5]；0 或缺失都表示"没有交互过"。
type ItemRatings map[string]float64

// RatingsSnapshot 是某一时刻的全量评分快照：userID -> ItemRatings。
//
// 所有权约定：
//   - 快照由调用方构建并持有，引擎在一次推荐计算内只读，绝不修改
//   - 快照捕获之后底层数据源的变更不会反映进来（引擎不回读数据源）
//   - 多个并发调用各自持有快照引用即可，无需加锁
type RatingsSnapshot map[string]ItemRatings

// Has 判断用户是否存在于快照中（存在但评分表为空也算存在）。
func (s RatingsSnapshot) Has(userID string) bool {
	_, ok := s[userID]
	return ok
}

// User 返回用户的评分表；用户不存在时返回 nil（可安全遍历/取值）。
func (s RatingsSnapshot) User(userID string) ItemRatings {
	return s[userID]
}

// Rating 返回用户对某本书的评分，缺失时返回 0（即"没有交互"）。
func (s RatingsSnapshot) Rating(userID, bookID string) float64 {
	return s[userID][bookID]
}

// Users 返回快照中的所有用户 ID（顺序不保证）。
func (s RatingsSnapshot) Users() []string {
	users := make([]string, 0, len(s))
	for userID := range s {
		users = append(users, userID)
	}
	return users
}

// Clone 返回快照的深拷贝，用于需要和数据源写入方隔离的场景。
func (s RatingsSnapshot) Clone() RatingsSnapshot {
	if s == nil {
		return nil
	}
	out := make(RatingsSnapshot, len(s))
	for userID, ratings := range s {
		r := make(ItemRatings, len(ratings))
		for bookID, score := range ratings {
			r[bookID] = score
		}
		out[userID] = r
	}
	return out
}
