package rerank

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在召回/过滤之后截取前 N 本书。
// 在混合召回的 Pipeline 里承担 max_results 的角色。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.Fanout{...},       // 召回
//	        &filter.BorrowedNode{...}, // 剔除已借阅
//	        &rerank.TopNNode{N: 12},   // 截取 Top 12
//	    },
//	}
type TopNNode struct {
	// N 要保留的书目数量（Top N）
	// 如果 N <= 0，则返回所有书目（不截断）
	// 如果 N > len(items)，则返回所有书目
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
