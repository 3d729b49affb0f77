// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package database wraps the embedded DuckDB store holding the Olympic
// dataset and exposes typed query methods for the API layer.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/logging"
)

// ErrNotFound is returned by keyed lookups when no row matches.
var ErrNotFound = errors.New("not found")

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// Prepared statement caching
	stmtCache   map[string]*sql.Stmt
	stmtCacheMu sync.RWMutex
}

// New opens the DuckDB database, configures the connection pool and
// initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// preserve_insertion_order=false reduces memory usage but may change
	// result order of unordered queries.
	preserveOrder := "true"
	if !cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&preserve_insertion_order=%s",
		cfg.Path, numThreads, cfg.MaxMemory, preserveOrder)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:      conn,
		cfg:       cfg,
		stmtCache: make(map[string]*sql.Stmt),
	}

	db.configureConnectionPool()

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// configureConnectionPool sets connection pool parameters:
// max_open tracks NumCPU for query parallelism, a small idle pool for
// reuse, bounded lifetimes to avoid stale connections.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the database connection and all cached prepared
// statements. A CHECKPOINT flushes the WAL so the next startup does not
// replay it.
func (db *DB) Close() error {
	db.stmtCacheMu.Lock()
	for _, stmt := range db.stmtCache {
		if stmt != nil {
			closeWithLog(stmt, "prepared statement")
		}
	}
	db.stmtCache = make(map[string]*sql.Stmt)
	db.stmtCacheMu.Unlock()

	if db.conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}

		return db.conn.Close()
	}
	return nil
}

// stmt returns a cached prepared statement for the query, preparing it
// on first use. Statements live until Close.
func (db *DB) stmt(ctx context.Context, query string) (*sql.Stmt, error) {
	db.stmtCacheMu.RLock()
	cached, ok := db.stmtCache[query]
	db.stmtCacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	prepared, err := db.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	db.stmtCacheMu.Lock()
	defer db.stmtCacheMu.Unlock()
	if cached, ok := db.stmtCache[query]; ok {
		// Another goroutine prepared the same query first.
		closeWithLog(prepared, "prepared statement")
		return cached, nil
	}
	db.stmtCache[query] = prepared
	return prepared, nil
}

// closeQuietly closes a resource ignoring any error.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}

// closeWithLog closes a resource and logs failures at debug level.
func closeWithLog(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logging.Debug().Err(err).Str("resource", what).Msg("Failed to close resource")
	}
}
