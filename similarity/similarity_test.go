package similarity

import (
	"math"
	"testing"

	"github.com/rushteam/bookrec/core"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCosine_Score(t *testing.T) {
	snap := core.RatingsSnapshot{
		"Alice": {"b1": 5, "b2": 3},
		"Bob":   {"b1": 5, "b2": 3, "b3": 4},
		"Carl":  {"b3": 1},
		"Dora":  {"b1": 0, "b2": 0},
		"Empty": {},
	}

	tests := []struct {
		name  string
		user1 string
		user2 string
		want  float64
	}{
		{
			// Alice 和 Bob 在共同书目 {b1,b2} 上评分完全一致
			name:  "identical ratings on shared books",
			user1: "Alice",
			user2: "Bob",
			want:  1.0,
		},
		{
			name:  "no shared books",
			user1: "Alice",
			user2: "Carl",
			want:  0,
		},
		{
			// 共同书目评分全为 0 时模长为 0，保护除零
			name:  "zero magnitude on shared books",
			user1: "Alice",
			user2: "Dora",
			want:  0,
		},
		{
			name:  "empty ratings",
			user1: "Alice",
			user2: "Empty",
			want:  0,
		},
		{
			name:  "unknown user treated as no ratings",
			user1: "Alice",
			user2: "Nobody",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine{}.Score(snap, tt.user1, tt.user2)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(%s, %s) = %v, want %v", tt.user1, tt.user2, got, tt.want)
			}
		})
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	snap := core.RatingsSnapshot{
		"u": {"b1": 2, "b2": 4.5},
	}
	if got := (Cosine{}).Score(snap, "u", "u"); !almostEqual(got, 1.0) {
		t.Errorf("self similarity = %v, want 1.0", got)
	}
}

func TestJaccard_Score(t *testing.T) {
	tests := []struct {
		name      string
		snap      core.RatingsSnapshot
		threshold float64
		user1     string
		user2     string
		want      float64
	}{
		{
			// liked(A)={x,y}, liked(B)={x,z} → 1/3
			name: "one shared liked book",
			snap: core.RatingsSnapshot{
				"A": {"x": 1, "y": 1},
				"B": {"x": 1, "z": 1},
			},
			user1: "A",
			user2: "B",
			want:  1.0 / 3.0,
		},
		{
			name: "identical liked sets",
			snap: core.RatingsSnapshot{
				"A": {"x": 5, "y": 4},
				"B": {"x": 3, "y": 1},
			},
			user1: "A",
			user2: "B",
			want:  1.0,
		},
		{
			name: "both liked sets empty",
			snap: core.RatingsSnapshot{
				"A": {"x": 0},
				"B": {},
			},
			user1: "A",
			user2: "B",
			want:  0,
		},
		{
			// 阈值 3.5：A 只喜欢 x，B 只喜欢 x → 1.0
			name: "threshold restricts liked sets",
			snap: core.RatingsSnapshot{
				"A": {"x": 5, "y": 2},
				"B": {"x": 4, "z": 3},
			},
			threshold: 3.5,
			user1:     "A",
			user2:     "B",
			want:      1.0,
		},
		{
			name: "unknown user",
			snap: core.RatingsSnapshot{
				"A": {"x": 1},
			},
			user1: "A",
			user2: "Nobody",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Jaccard{LikedThreshold: tt.threshold}
			got := m.Score(tt.snap, tt.user1, tt.user2)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(%s, %s) = %v, want %v", tt.user1, tt.user2, got, tt.want)
			}
		})
	}
}

func TestMetrics_SymmetryAndRange(t *testing.T) {
	snap := core.RatingsSnapshot{
		"u1": {"a": 5, "b": 3, "c": 1},
		"u2": {"a": 4, "c": 2, "d": 5},
		"u3": {"d": 1},
		"u4": {},
	}
	metrics := []Metric{Cosine{}, Jaccard{}, Jaccard{LikedThreshold: 2}}
	users := []string{"u1", "u2", "u3", "u4"}

	for _, m := range metrics {
		for _, a := range users {
			for _, b := range users {
				ab := m.Score(snap, a, b)
				ba := m.Score(snap, b, a)
				if !almostEqual(ab, ba) {
					t.Errorf("%s: Score(%s,%s)=%v != Score(%s,%s)=%v", m.Name(), a, b, ab, b, a, ba)
				}
				if ab < 0 || ab > 1+eps {
					t.Errorf("%s: Score(%s,%s)=%v out of [0,1]", m.Name(), a, b, ab)
				}
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		wantName string
		wantErr  bool
	}{
		{name: "cosine", metric: "cosine", wantName: "cosine"},
		{name: "case insensitive", metric: "Cosine", wantName: "cosine"},
		{name: "jaccard", metric: "JACCARD", wantName: "jaccard"},
		{name: "unknown metric", metric: "pearson", wantErr: true},
		{name: "empty metric", metric: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.metric, 0)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got nil", tt.metric)
				}
				if !core.IsUnsupportedMetric(err) {
					t.Errorf("Parse(%q) error = %v, want UNSUPPORTED_METRIC", tt.metric, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.metric, err)
			}
			if m.Name() != tt.wantName {
				t.Errorf("Parse(%q).Name() = %q, want %q", tt.metric, m.Name(), tt.wantName)
			}
		})
	}
}

func TestParse_JaccardThresholdBound(t *testing.T) {
	snap := core.RatingsSnapshot{
		"A": {"x": 5, "y": 2},
		"B": {"x": 4, "y": 3},
	}

	m, err := Parse("jaccard", 3.5)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	// 阈值 3.5 下 liked(A)=liked(B)={x}
	if got := m.Score(snap, "A", "B"); !almostEqual(got, 1.0) {
		t.Errorf("Score = %v, want 1.0", got)
	}
}
