package core

import "context"

// RatingsStore 是评分数据的领域接口：把持久化的借阅/交互记录翻译成评分快照。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（ratings / recall adapter）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 引擎按次取快照，快照归调用链所有；实现方返回的快照不得再被修改
//
// 实现：
//   - ratings.Repository 基于内存（借阅 / 归还事件驱动）
//   - ratings.PostgresRatings 基于 PostgreSQL 借阅表
//   - recall.StoreRatingsAdapter 基于 core.Store（Redis / 内存 KV）
type RatingsStore interface {
	// Name 返回数据源名称（用于日志/监控）
	Name() string

	// Snapshot 构建当前时刻的全量评分快照
	Snapshot(ctx context.Context) (RatingsSnapshot, error)
}
