// Package config 组装 NodeFactory：把外部依赖（评分数据源、KV 存储）注入
// 各个 Node 构建器，使 Pipeline 可以完全由 YAML/JSON 配置驱动。
// 独立成包是为了避免 pipeline 与 recall/filter/rerank 之间的循环依赖。
package config

import (
	"fmt"
	"time"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/filter"
	"github.com/rushteam/bookrec/pipeline"
	"github.com/rushteam/bookrec/pkg/conv"
	"github.com/rushteam/bookrec/recall"
	"github.com/rushteam/bookrec/rerank"
)

// Deps 是构建 Node 所需的外部依赖。
type Deps struct {
	// Ratings 评分数据源（recall.usercf、filter.borrowed 使用）
	Ratings core.RatingsStore

	// Store KV 存储（recall.popular、filter 的黑名单使用），可为 nil
	Store core.Store
}

// DefaultFactory 注册全部内置 Node 类型。
//
// 支持的类型与配置项：
//
//	recall.usercf    metric / k_neighbours / max_results / liked_threshold
//	recall.popular   key / ids / top_n
//	recall.fanout    sources[{type,config}] / dedup / timeout_ms / max_concurrent / merge_strategy
//	filter           blacklist{book_ids,key} / rule{expr}
//	filter.borrowed  （无配置，使用 Deps.Ratings）
//	rerank.topn      n
//	rerank.diversity label_key
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("recall.usercf", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.UserCF{
			Store:          deps.Ratings,
			Metric:         conv.ConfigGet(cfg, "metric", ""),
			KNeighbours:    int(conv.ConfigGetInt64(cfg, "k_neighbours", 0)),
			MaxResults:     int(conv.ConfigGetInt64(cfg, "max_results", 0)),
			LikedThreshold: conv.ConfigGetFloat64(cfg, "liked_threshold", 0),
		}, nil
	})

	f.Register("recall.popular", func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Popular{
			Store: deps.Store,
			Key:   conv.ConfigGet(cfg, "key", ""),
			IDs:   conv.SliceAnyToString(cfg["ids"]),
			TopN:  conv.ConfigGetInt64(cfg, "top_n", 0),
		}, nil
	})

	// fanout 的子召回源复用同一个 factory 递归构建，
	// 因此任何注册为 Node 且实现 recall.Source 的类型都能做子源
	f.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		node := &recall.Fanout{
			Dedup:         conv.ConfigGet(cfg, "dedup", false),
			MaxConcurrent: int(conv.ConfigGetInt64(cfg, "max_concurrent", 0)),
			MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
		}
		if ms := conv.ConfigGetInt64(cfg, "timeout_ms", 0); ms > 0 {
			node.Timeout = time.Duration(ms) * time.Millisecond
		}

		raw, _ := cfg["sources"].([]any)
		for _, entry := range raw {
			sc, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			nodeType := conv.ConfigGet(sc, "type", "")
			subCfg, _ := sc["config"].(map[string]any)
			sub, err := f.Build(nodeType, subCfg)
			if err != nil {
				return nil, fmt.Errorf("build fanout source %s: %w", nodeType, err)
			}
			src, ok := sub.(recall.Source)
			if !ok {
				return nil, fmt.Errorf("fanout source %s is not a recall source", nodeType)
			}
			node.Sources = append(node.Sources, src)
		}
		return node, nil
	})

	f.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		node := &filter.FilterNode{}

		if bl, ok := cfg["blacklist"].(map[string]any); ok {
			node.Filters = append(node.Filters, &filter.BlacklistFilter{
				BookIDs: conv.SliceAnyToString(bl["book_ids"]),
				Store:   deps.Store,
				Key:     conv.ConfigGet(bl, "key", ""),
			})
		}
		if rule, ok := cfg["rule"].(map[string]any); ok {
			node.Filters = append(node.Filters, &filter.RuleFilter{
				Expr: conv.ConfigGet(rule, "expr", ""),
			})
		}
		return node, nil
	})

	f.Register("filter.borrowed", func(_ map[string]any) (pipeline.Node, error) {
		return &filter.BorrowedNode{Store: deps.Ratings}, nil
	})

	f.Register("rerank.topn", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.TopNNode{
			N: int(conv.ConfigGetInt64(cfg, "n", 0)),
		}, nil
	})

	f.Register("rerank.diversity", func(cfg map[string]any) (pipeline.Node, error) {
		return &rerank.Diversity{
			LabelKey: conv.ConfigGet(cfg, "label_key", ""),
		}, nil
	})

	return f
}
