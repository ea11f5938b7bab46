package recall

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
)

func TestFanout_CFWithPopularFallback(t *testing.T) {
	cf := &UserCF{Store: &snapshotStore{snap: libSnapshot()}}
	popular := &Popular{IDs: []string{"b3", "p1", "p2"}}

	fanout := &Fanout{
		Sources:       []Source{cf, popular},
		Dedup:         true,
		MergeStrategy: "priority",
	}

	items, err := fanout.Process(context.Background(), &core.RecommendContext{UserID: "Alice"}, nil)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	got := make(map[string]*core.Item, len(items))
	for _, it := range items {
		if _, dup := got[it.ID]; dup {
			t.Errorf("duplicate item %s after dedup", it.ID)
		}
		got[it.ID] = it
	}

	// CF 结果 b3 与热门榜 b3 去重后合并，热门榜补充 p1/p2
	for _, id := range []string{"b3", "p1", "p2"} {
		if _, ok := got[id]; !ok {
			t.Errorf("missing item %s", id)
		}
	}
	// priority 合并：b3 保留 CF 来源（索引 0 优先）
	if lbl := got["b3"].Labels["recall_priority"]; lbl.Value != "0" {
		t.Errorf("b3 priority = %q, want 0 (usercf wins)", lbl.Value)
	}
}

func TestFanout_NoSources(t *testing.T) {
	items, err := (&Fanout{}).Process(context.Background(), &core.RecommendContext{UserID: "u"}, nil)
	if err != nil || items != nil {
		t.Errorf("no sources should be a no-op, got (%v, %v)", items, err)
	}
}
