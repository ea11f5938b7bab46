// Package similarity 提供用户两两相似度的度量策略。
//
// 所有度量遵循同一契约：
//   - 输入评分快照与两个用户 ID，输出相似度分数 ∈ [0,1]
//   - 对称：Score(s, a, b) == Score(s, b, a)
//   - 全函数：用户不在快照中时按"无评分"处理，返回 0，不报错
//     （调用方是否拒绝未知用户由上游引擎决定）
package similarity

import (
	"strings"

	"github.com/rushteam/bookrec/core"
)

// Metric 是相似度度量策略。实现是无状态的值类型（Jaccard 携带阈值），
// 可安全并发复用。
type Metric interface {
	// Name 返回度量名称（"cosine" / "jaccard"）
	Name() string

	// Score 计算两个用户的相似度
	Score(snap core.RatingsSnapshot, user1, user2 string) float64
}

// ErrUnsupportedMetric 表示度量名不在 {"cosine","jaccard"} 中。
// 这是显式错误，任何入口都不会静默回退到默认度量。
var ErrUnsupportedMetric = core.NewDomainError(
	core.ModuleSimilarity,
	core.ErrorCodeUnsupportedMetric,
	"similarity: unsupported metric (supported: cosine, jaccard)",
)

// Parse 按名称（大小写不敏感）解析度量策略。
// likedThreshold 只对 jaccard 生效，cosine 忽略。
func Parse(name string, likedThreshold float64) (Metric, error) {
	switch strings.ToLower(name) {
	case "cosine":
		return Cosine{}, nil
	case "jaccard":
		return Jaccard{LikedThreshold: likedThreshold}, nil
	default:
		return nil, ErrUnsupportedMetric
	}
}
