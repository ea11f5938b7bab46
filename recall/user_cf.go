package recall

import (
	"context"
	"sort"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
	"github.com/rushteam/bookrec/similarity"
)

// DefaultMaxResults 是推荐结果的默认返回条数。
const DefaultMaxResults = 12

// UserCF 是基于用户的协同过滤引擎（User-based Collaborative Filtering），
// 同时实现 Source / Node 接口，可直接挂进 Pipeline。
//
// 核心思想："口味相似的读者，喜欢相似的书"
//
// 算法流程：
//  1. 对快照中的每个其他用户，计算与目标用户的相似度（cosine / jaccard）
//  2. 只保留严格正相似度的邻居，按相似度取 TopK
//  3. 对邻居读过而目标用户没读过的书，累加 相似度 × 邻居评分
//  4. 按累计分数降序返回
//
// 计算模型：
//  - 纯函数式：对一份只读快照做一次完整计算，无缓存、无增量更新
//  - 每次调用代价 = 用户数 × 每对共同书目数（相似度）+ 邻居数 × 邻居书目数（聚合）
//  - 调用方若要限定时延，应在构建快照时控制用户/书目规模
//
// 未知用户策略（见 DESIGN.md）：
//  - 目标用户不在快照中视为"无历史"，返回空结果而非错误
type UserCF struct {
	// Store 提供评分快照。作为 Source/Node 使用时必填；
	// 直接调用 RecommendForUser 等快照入口时可以为空。
	Store core.RatingsStore

	// Metric 相似度度量："cosine" / "jaccard"（大小写不敏感）。空值默认 cosine。
	Metric string

	// KNeighbours 参与聚合的最相似用户数上限；<= 0 表示使用所有正相似度用户。
	KNeighbours int

	// MaxResults 最终返回的推荐条数上限；<= 0 时使用 DefaultMaxResults。
	MaxResults int

	// LikedThreshold 只对 jaccard 生效：评分严格大于该值才算"喜欢"。
	LikedThreshold float64
}

func (r *UserCF) Name() string        { return "recall.usercf" }
func (r *UserCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *UserCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口：取一份快照并为 rctx.UserID 生成推荐。
func (r *UserCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Store == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	snap, err := r.Store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	items, err := r.RecommendForUser(snap, rctx.UserID)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})
		it.PutLabel("cf_metric", utils.Label{Value: r.metricName(), Source: "recall"})
	}
	return items, nil
}

// UserSimilarity 是绕过排序链路的两两相似度查询，用于诊断/巡检。
// 与推荐入口共享同一套度量解析和错误契约；用户不在快照中按 0 分处理。
func (r *UserCF) UserSimilarity(
	snap core.RatingsSnapshot,
	user1, user2 string,
) (float64, error) {
	metric, err := similarity.Parse(r.metricName(), r.LikedThreshold)
	if err != nil {
		return 0, err
	}
	return metric.Score(snap, user1, user2), nil
}

// Similarities 计算目标用户与快照中所有其他用户的相似度，只保留严格正分。
// 目标用户不在快照中时返回空 map（无历史，不是错误）。
func (r *UserCF) Similarities(
	snap core.RatingsSnapshot,
	targetUser string,
) (map[string]float64, error) {
	metric, err := similarity.Parse(r.metricName(), r.LikedThreshold)
	if err != nil {
		return nil, err
	}

	similarities := make(map[string]float64)
	if !snap.Has(targetUser) {
		return similarities, nil
	}

	for userID := range snap {
		if userID == targetUser {
			continue
		}
		// 零分或负分不携带任何推荐信号，留在聚合里只会增加噪音和开销
		if s := metric.Score(snap, targetUser, userID); s > 0 {
			similarities[userID] = s
		}
	}
	return similarities, nil
}

// RecommendForUser 为目标用户生成排好序的推荐列表。
//
// 保证：
//   - 目标用户已评分（> 0）的书绝不出现在结果中
//   - 结果按分数降序、同分按书目 ID 升序，无重复
//   - 未知度量名返回 ErrUnsupportedMetric；无信号（未知用户/无邻居/没有
//     可推荐的书）返回空列表和 nil error
func (r *UserCF) RecommendForUser(
	snap core.RatingsSnapshot,
	targetUser string,
) ([]*core.Item, error) {
	similarities, err := r.Similarities(snap, targetUser)
	if err != nil {
		return nil, err
	}
	if len(similarities) == 0 {
		return nil, nil
	}

	neighbours := r.topNeighbours(similarities)

	// 加权累加：score[bookID] = Σ(相似度 × 邻居评分)，只算目标没读过的书
	targetRatings := snap.User(targetUser)
	scores := make(map[string]float64)
	for _, nb := range neighbours {
		for bookID, rating := range snap.User(nb.userID) {
			if targetRatings[bookID] == 0 {
				scores[bookID] += nb.similarity * rating
			}
		}
	}

	ranked := make([]*core.Item, 0, len(scores))
	for bookID, score := range scores {
		it := core.NewItem(bookID)
		it.Score = score
		ranked = append(ranked, it)
	}
	// 同分按 ID 升序，保证输出确定性
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})

	maxResults := r.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked, nil
}

type neighbour struct {
	userID     string
	similarity float64
}

// topNeighbours 按相似度降序（同分按用户 ID 升序）排序，并截取 KNeighbours。
func (r *UserCF) topNeighbours(similarities map[string]float64) []neighbour {
	neighbours := make([]neighbour, 0, len(similarities))
	for userID, sim := range similarities {
		neighbours = append(neighbours, neighbour{userID: userID, similarity: sim})
	}
	sort.Slice(neighbours, func(i, j int) bool {
		if neighbours[i].similarity != neighbours[j].similarity {
			return neighbours[i].similarity > neighbours[j].similarity
		}
		return neighbours[i].userID < neighbours[j].userID
	})

	if r.KNeighbours > 0 && len(neighbours) > r.KNeighbours {
		neighbours = neighbours[:r.KNeighbours]
	}
	return neighbours
}

func (r *UserCF) metricName() string {
	if r.Metric == "" {
		return "cosine"
	}
	return r.Metric
}
