package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/utils"
)

func TestTopNNode(t *testing.T) {
	mk := func(ids ...string) []*core.Item {
		out := make([]*core.Item, 0, len(ids))
		for _, id := range ids {
			out = append(out, core.NewItem(id))
		}
		return out
	}

	tests := []struct {
		name    string
		n       int
		in      []*core.Item
		wantLen int
	}{
		{name: "truncates", n: 2, in: mk("a", "b", "c"), wantLen: 2},
		{name: "n larger than items", n: 10, in: mk("a", "b"), wantLen: 2},
		{name: "n zero keeps all", n: 0, in: mk("a", "b", "c"), wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, tt.in)
			if err != nil {
				t.Fatalf("Process error: %v", err)
			}
			if len(out) != tt.wantLen {
				t.Errorf("got %d items, want %d", len(out), tt.wantLen)
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	mk := func(id, genre string) *core.Item {
		it := core.NewItem(id)
		if genre != "" {
			it.PutLabel("genre", utils.Label{Value: genre, Source: "meta"})
		}
		return it
	}

	in := []*core.Item{
		mk("b1", "sci-fi"),
		mk("b2", "sci-fi"),
		mk("b3", "history"),
		mk("b4", ""), // 类别未知，保留
	}

	out, err := (&Diversity{}).Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d items, want 3", len(out))
	}
	if out[0].ID != "b1" || out[1].ID != "b3" || out[2].ID != "b4" {
		t.Errorf("out = [%s %s %s], want [b1 b3 b4]", out[0].ID, out[1].ID, out[2].ID)
	}
}
