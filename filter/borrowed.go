package filter

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/utils"
)

// BorrowedNode 过滤掉目标用户已经借阅过（评分 > 0）的书。
//
// UserCF 在聚合阶段本身不会产出已借阅的书；这个 Node 服务于混合召回场景：
// 热门榜等非个性化召回源不知道用户历史，合并之后需要统一剔除已读书目。
//
// 实现为独立 Node 而非 Filter：评分快照按请求取一次，避免逐条取快照的开销。
type BorrowedNode struct {
	// Store 提供评分快照
	Store core.RatingsStore
}

func (n *BorrowedNode) Name() string {
	return "filter.borrowed"
}

func (n *BorrowedNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *BorrowedNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Store == nil || rctx == nil || rctx.UserID == "" || len(items) == 0 {
		return items, nil
	}

	snap, err := n.Store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	ratings := snap.User(rctx.UserID)
	if len(ratings) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if ratings[item.ID] > 0 {
			item.PutLabel("filtered", utils.Label{Value: "true", Source: n.Name()})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
