package filter

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/utils"
)

type snapshotStore struct {
	snap core.RatingsSnapshot
}

func (s *snapshotStore) Name() string { return "snapshot_store" }
func (s *snapshotStore) Snapshot(_ context.Context) (core.RatingsSnapshot, error) {
	return s.snap, nil
}

func items(ids ...string) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func ids(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestBorrowedNode(t *testing.T) {
	node := &BorrowedNode{
		Store: &snapshotStore{snap: core.RatingsSnapshot{
			"u": {"b1": 5, "b2": 0}, // b2 已归还（评分 0），可以再推荐
		}},
	}
	rctx := &core.RecommendContext{UserID: "u"}

	out, err := node.Process(context.Background(), rctx, items("b1", "b2", "b3"))
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b2" || out[1].ID != "b3" {
		t.Errorf("out = %v, want [b2 b3]", ids(out))
	}
}

func TestBorrowedNode_NoUser(t *testing.T) {
	node := &BorrowedNode{Store: &snapshotStore{snap: core.RatingsSnapshot{}}}
	in := items("b1")

	out, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("missing user should be a no-op, got %v", ids(out))
	}
}

func TestBlacklistFilter(t *testing.T) {
	f := NewBlacklistFilter([]string{"banned"}, nil, "")

	node := &FilterNode{Filters: []Filter{f}}
	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, items("ok", "banned"))
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ok" {
		t.Errorf("out = %v, want [ok]", ids(out))
	}
}

func TestRuleFilter(t *testing.T) {
	low := core.NewItem("low")
	low.Score = 0.05
	low.PutLabel("recall_source", utils.Label{Value: "popular", Source: "recall"})

	high := core.NewItem("high")
	high.Score = 3.2
	high.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})

	node := &FilterNode{Filters: []Filter{
		&RuleFilter{Expr: `label.recall_source.contains("popular") && item.score < 0.1`},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, []*core.Item{low, high})
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "high" {
		t.Errorf("out = %v, want [high]", ids(out))
	}
	if lbl, ok := low.Labels["filtered"]; !ok || lbl.Source != "filter.rule" {
		t.Errorf("filtered label = %+v, want source filter.rule", lbl)
	}
}

func TestRuleFilter_EmptyExpr(t *testing.T) {
	f := &RuleFilter{}
	got, err := f.ShouldFilter(context.Background(), nil, core.NewItem("b"))
	if err != nil || got {
		t.Errorf("empty expr should keep everything, got (%v, %v)", got, err)
	}
}
