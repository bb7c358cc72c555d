package game

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gonewx/citybuilder/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteRecordStore 基于 SQLite 的建筑记录存储
// 与 PlacementStore 提供相同的记录操作，用于导出和外部工具查询
// 一个数据库文件可以保存多个槽位
type SQLiteRecordStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLiteRecordStore 打开（或创建）SQLite 记录库
//
// 参数：
//   - path: 数据库文件路径，目录不存在时自动创建
//   - slot: 存档槽位，空字符串使用 DefaultSlot
func OpenSQLiteRecordStore(path, slot string) (*SQLiteRecordStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if !slotNamePattern.MatchString(slot) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initRecordPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initRecordSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteRecordStore{db: db, slot: slot}, nil
}

func initRecordPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func initRecordSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS placement_records (
			slot TEXT NOT NULL,
			guid TEXT NOT NULL,
			seq INTEGER NOT NULL,
			category TEXT NOT NULL,
			direction TEXT NOT NULL,
			cell_x INTEGER NOT NULL,
			cell_z INTEGER NOT NULL,
			identifier TEXT NOT NULL,
			PRIMARY KEY (slot, guid)
		);`,
		`CREATE INDEX IF NOT EXISTS placement_records_seq ON placement_records(slot, seq);`,
		`CREATE TABLE IF NOT EXISTS slot_meta (
			slot TEXT PRIMARY KEY,
			seeded INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return nil
}

// Close 关闭数据库
func (s *SQLiteRecordStore) Close() error {
	return s.db.Close()
}

// Slot 返回存档槽位名称
func (s *SQLiteRecordStore) Slot() string {
	return s.slot
}

// AddRecord 追加一条记录
func (s *SQLiteRecordStore) AddRecord(rec PlacementRecord) error {
	var exists int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM placement_records WHERE slot = ? AND guid = ?`, s.slot, rec.Guid).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query record %s: %w", rec.Guid, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrRecordExists, rec.Guid)
	}

	_, err = s.db.Exec(`INSERT INTO placement_records (slot, guid, seq, category, direction, cell_x, cell_z, identifier)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM placement_records WHERE slot = ?), ?, ?, ?, ?, ?)`,
		s.slot, rec.Guid, s.slot, rec.Category, rec.Direction.String(), rec.Cell.X, rec.Cell.Z, rec.Identifier)
	if err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.Guid, err)
	}
	return nil
}

// UpdateRecord 按实例ID更新记录，保留原有顺序
func (s *SQLiteRecordStore) UpdateRecord(rec PlacementRecord) error {
	res, err := s.db.Exec(`UPDATE placement_records SET category = ?, direction = ?, cell_x = ?, cell_z = ?, identifier = ?
		WHERE slot = ? AND guid = ?`,
		rec.Category, rec.Direction.String(), rec.Cell.X, rec.Cell.Z, rec.Identifier, s.slot, rec.Guid)
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", rec.Guid, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, rec.Guid)
	}
	return nil
}

// RemoveRecord 按实例ID删除记录
func (s *SQLiteRecordStore) RemoveRecord(guid string) error {
	res, err := s.db.Exec(`DELETE FROM placement_records WHERE slot = ? AND guid = ?`, s.slot, guid)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", guid, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, guid)
	}
	return nil
}

// Records 返回槽位内所有记录（按放置顺序）
// 读取失败时记录日志并返回空列表，需要区分失败的调用方使用 LoadRecords
func (s *SQLiteRecordStore) Records() []PlacementRecord {
	records, err := s.LoadRecords()
	if err != nil {
		log.Printf("[SQLiteRecordStore] Failed to load records: %v", err)
		return nil
	}
	return records
}

// LoadRecords 读取槽位内所有记录（按放置顺序）
// 任何一行无法解析时返回错误，不返回部分结果
func (s *SQLiteRecordStore) LoadRecords() ([]PlacementRecord, error) {
	rows, err := s.db.Query(`SELECT guid, category, direction, cell_x, cell_z, identifier
		FROM placement_records WHERE slot = ? ORDER BY seq`, s.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot %s: %w", s.slot, err)
	}
	defer rows.Close()

	var result []PlacementRecord
	for rows.Next() {
		var rec PlacementRecord
		var dir string
		if err := rows.Scan(&rec.Guid, &rec.Category, &dir, &rec.Cell.X, &rec.Cell.Z, &rec.Identifier); err != nil {
			return nil, fmt.Errorf("failed to scan record in slot %s: %w", s.slot, err)
		}
		parsed, err := types.ParseDirection(dir)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.Guid, err)
		}
		rec.Direction = parsed
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slot %s: %w", s.slot, err)
	}
	return result, nil
}

// IsSeeded 场景初始建筑是否已经写入过该槽位
func (s *SQLiteRecordStore) IsSeeded() bool {
	var seeded int
	err := s.db.QueryRow(`SELECT seeded FROM slot_meta WHERE slot = ?`, s.slot).Scan(&seeded)
	if err != nil {
		return false
	}
	return seeded != 0
}

// MarkSeeded 标记场景初始建筑已写入
func (s *SQLiteRecordStore) MarkSeeded() error {
	_, err := s.db.Exec(`INSERT INTO slot_meta (slot, seeded) VALUES (?, 1)
		ON CONFLICT(slot) DO UPDATE SET seeded = 1`, s.slot)
	if err != nil {
		return fmt.Errorf("failed to mark slot %s seeded: %w", s.slot, err)
	}
	return nil
}

// ReplaceAll 用给定记录整体替换槽位内容（导出时使用）
func (s *SQLiteRecordStore) ReplaceAll(records []PlacementRecord, seeded bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM placement_records WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", s.slot, err)
	}
	for i, rec := range records {
		_, err := tx.Exec(`INSERT INTO placement_records (slot, guid, seq, category, direction, cell_x, cell_z, identifier)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.slot, rec.Guid, i+1, rec.Category, rec.Direction.String(), rec.Cell.X, rec.Cell.Z, rec.Identifier)
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.Guid, err)
		}
	}
	seededValue := 0
	if seeded {
		seededValue = 1
	}
	_, err = tx.Exec(`INSERT INTO slot_meta (slot, seeded) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET seeded = excluded.seeded`, s.slot, seededValue)
	if err != nil {
		return fmt.Errorf("failed to update slot meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	log.Printf("[SQLiteRecordStore] Replaced slot %s with %d records", s.slot, len(records))
	return nil
}
