package similarity

import "github.com/rushteam/bookrec/core"

// Jaccard 是基于"喜欢集合"重叠度的相似度。
//
//	J(A,B) = |liked(A) ∩ liked(B)| / |liked(A) ∪ liked(B)|
//
// liked(u) = { bookID : rating > LikedThreshold }。阈值让调用方定义"喜欢"：
// 0 表示任何正评分都算，4 表示只有高分书才算。
//
// 契约：
//   - 两个喜欢集合都为空 → 0
//   - 并集为空 → 0
//   - 结果 ∈ [0,1]
type Jaccard struct {
	// LikedThreshold 之上（严格大于）的评分才算"喜欢"。默认 0。
	LikedThreshold float64
}

func (Jaccard) Name() string { return "jaccard" }

func (j Jaccard) Score(snap core.RatingsSnapshot, user1, user2 string) float64 {
	set1 := j.likedSet(snap.User(user1))
	set2 := j.likedSet(snap.User(user2))

	if len(set1) == 0 && len(set2) == 0 {
		return 0
	}

	inter := 0
	for bookID := range set1 {
		if _, ok := set2[bookID]; ok {
			inter++
		}
	}
	union := len(set1) + len(set2) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func (j Jaccard) likedSet(ratings core.ItemRatings) map[string]struct{} {
	liked := make(map[string]struct{}, len(ratings))
	for bookID, score := range ratings {
		if score > j.LikedThreshold {
			liked[bookID] = struct{}{}
		}
	}
	return liked
}
