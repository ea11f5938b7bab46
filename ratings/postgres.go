package ratings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/rushteam/bookrec/core"
)

// PostgresRatings 从 PostgreSQL 的借阅表构建评分快照。
//
// 需要一张 `borrows` 表：
//
//	CREATE TABLE borrows (
//	    user_id  TEXT NOT NULL,
//	    book_id  TEXT NOT NULL,
//	    rating   SMALLINT NOT NULL DEFAULT 5,
//	    active   BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    UNIQUE (user_id, book_id)
//	);
//
// 每次 Snapshot 全量扫描：引擎的计算模型就是"每次调用基于一份新快照"，
// 缓存与否由上层决定（例如定时刷新后换给引擎）。
type PostgresRatings struct {
	db     *sql.DB
	logger *slog.Logger

	// Table 借阅表名，空值默认 "borrows"
	Table string
}

// OpenPostgres 按 lib/pq DSN 打开连接并构建 PostgresRatings。
func OpenPostgres(dsn string) (*PostgresRatings, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPostgresRatings(db), nil
}

// NewPostgresRatings 复用既有的 *sql.DB 构建 PostgresRatings。
func NewPostgresRatings(db *sql.DB) *PostgresRatings {
	return &PostgresRatings{
		db:     db,
		logger: slog.Default().With("component", "postgres-ratings"),
	}
}

func (p *PostgresRatings) Name() string { return "postgres_ratings" }

// Snapshot 实现 core.RatingsStore：全量读取借阅记录并折算为评分快照。
func (p *PostgresRatings) Snapshot(ctx context.Context) (core.RatingsSnapshot, error) {
	table := p.Table
	if table == "" {
		table = "borrows"
	}

	rows, err := p.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT user_id, book_id, rating FROM %s`, table),
	)
	if err != nil {
		return nil, fmt.Errorf("querying borrows: %w", err)
	}
	defer rows.Close()

	snap := make(core.RatingsSnapshot)
	count := 0
	for rows.Next() {
		var userID, bookID string
		var rating float64
		if err := rows.Scan(&userID, &bookID, &rating); err != nil {
			return nil, fmt.Errorf("scanning borrow row: %w", err)
		}
		if _, ok := snap[userID]; !ok {
			snap[userID] = make(core.ItemRatings)
		}
		snap[userID][bookID] = rating
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating borrow rows: %w", err)
	}

	p.logger.Debug("ratings snapshot built",
		"users", len(snap),
		"borrows", count,
	)
	return snap, nil
}

// Close 关闭底层连接。
func (p *PostgresRatings) Close() error {
	return p.db.Close()
}

var _ core.RatingsStore = (*PostgresRatings)(nil)
