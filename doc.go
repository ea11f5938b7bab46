// Package bookrec 是一个图书推荐工具包（Book Recommender Kit），核心是基于用户的协同过滤。
//
// 设计要点：
// - Snapshot-first: 引擎只读取调用方提供的评分快照（RatingsSnapshot），无副作用、可并发
// - Pipeline 可组合: 召回（UserCF / Popular）→ 过滤 → 重排 通过 Node 串联
// - 相似度策略封闭: cosine / jaccard 以策略值的形式提供，新增度量是局部改动
package bookrec

import "github.com/rushteam/bookrec/pipeline"

// 轻量 facade：便于用户直接 import "bookrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
