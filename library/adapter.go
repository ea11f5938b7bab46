package library

import (
	"context"
	"math"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/recall"
)

// Recommendation 是给前台渲染的一条推荐。
type Recommendation struct {
	Book Book `json:"book"`

	// Score 引擎原始加权分
	Score float64 `json:"score"`

	// MatchPercent 相对榜首的匹配度（0–100，保留一位小数）。
	// 榜首恒为 100，便于前台按"和你最像的读者也在读"展示。
	MatchPercent float64 `json:"match_percent"`
}

// Options 控制一次推荐调用。零值字段走引擎默认。
type Options struct {
	Metric         string
	KNeighbours    int
	MaxResults     int
	LikedThreshold float64
}

// Library 把协同过滤引擎和书目库拼成前台可直接消费的接口。
type Library struct {
	Ratings core.RatingsStore
	Books   BookStore
}

func NewLibrary(ratings core.RatingsStore, books BookStore) *Library {
	return &Library{Ratings: ratings, Books: books}
}

// Recommendations 为读者生成带元数据的推荐列表。
//
//   - 引擎输出中书目库查不到的 ID 跳过（悬空 ID 不致错）
//   - 没有任何可推荐的书时返回空列表和 nil error
func (l *Library) Recommendations(
	ctx context.Context,
	userID string,
	opts Options,
) ([]Recommendation, error) {
	engine := &recall.UserCF{
		Store:          l.Ratings,
		Metric:         opts.Metric,
		KNeighbours:    opts.KNeighbours,
		MaxResults:     opts.MaxResults,
		LikedThreshold: opts.LikedThreshold,
	}

	snap, err := l.Ratings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	items, err := engine.RecommendForUser(snap, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []Recommendation{}, nil
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	books, err := l.Books.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}

	maxScore := items[0].Score
	out := make([]Recommendation, 0, len(items))
	for _, it := range items {
		book, ok := books[it.ID]
		if !ok {
			continue
		}
		out = append(out, Recommendation{
			Book:         book,
			Score:        it.Score,
			MatchPercent: matchPercent(it.Score, maxScore),
		})
	}
	return out, nil
}

// matchPercent = score / maxScore × 100，保留一位小数。
func matchPercent(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return math.Round(score/maxScore*1000) / 10
}
