package filter

import (
	"context"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/dsl"
)

// RuleFilter 是规则过滤器：表达式命中的书目会被过滤掉。
// 表达式使用 CEL 语法，详见 pkg/dsl。
//
// 示例：
//
//	// 过滤掉热门兜底里分数过低的候选
//	&RuleFilter{Expr: `label.recall_source.contains("popular") && item.score < 0.1`}
type RuleFilter struct {
	// Expr 是 CEL 布尔表达式；空表达式不过滤任何书目
	Expr string
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	return dsl.NewEval(item, rctx).Evaluate(f.Expr)
}
