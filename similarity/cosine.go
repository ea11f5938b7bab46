package similarity

import (
	"math"

	"github.com/rushteam/bookrec/core"
)

// Cosine 是基于评分向量夹角的相似度。
//
// 只在两个用户共同评过分的书上计算：稀疏评分矩阵里绝大多数位置是"没读过"，
// 用零填充并集会把"都没读过"当成一致信号，交集口径衡量的才是共同经验上的
// 评分一致程度。
//
// 契约：
//   - 没有共同书目 → 0
//   - 任一侧共同书目评分全为 0（模长为 0）→ 0，不会除零
//   - 评分非负时结果 ∈ [0,1]
type Cosine struct{}

func (Cosine) Name() string { return "cosine" }

func (Cosine) Score(snap core.RatingsSnapshot, user1, user2 string) float64 {
	r1 := snap.User(user1)
	r2 := snap.User(user2)

	var dot, mag1, mag2 float64
	shared := false
	for bookID, s1 := range r1 {
		s2, ok := r2[bookID]
		if !ok {
			continue
		}
		shared = true
		dot += s1 * s2
		mag1 += s1 * s1
		mag2 += s2 * s2
	}

	if !shared || mag1 == 0 || mag2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(mag1) * math.Sqrt(mag2))
}
