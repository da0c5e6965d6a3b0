package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gorm.io/gorm"
)

// hydrateOrder 保证外键依赖的表先写入。
var hydrateOrder = []string{"users", "campaigns", "visits"}

// HydrateResult 汇总每张表成功与失败的行数。
type HydrateResult struct {
	Inserted map[string]int
	Failed   map[string]int
}

// HydrateFile 读取 JSON 种子文件并写入数据库，见 Hydrate。
func HydrateFile(ctx context.Context, gdb *gorm.DB, path string, logger *slog.Logger) (HydrateResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HydrateResult{}, fmt.Errorf("read seed file: %w", err)
	}
	logger.Debug("reading seed file", "path", path)
	return Hydrate(ctx, gdb, data, logger)
}

// Hydrate 将形如 {"users": [...], "campaigns": [...], "visits": [...]} 的数据逐行写入。
// 未知的表名会使整个调用失败；单行写入失败只记录日志并跳过该行。
func Hydrate(ctx context.Context, gdb *gorm.DB, data []byte, logger *slog.Logger) (HydrateResult, error) {
	var tables map[string][]json.RawMessage
	if err := json.Unmarshal(data, &tables); err != nil {
		return HydrateResult{}, fmt.Errorf("decode seed data: %w", err)
	}

	var unknown []string
	for table := range tables {
		if !isHydratable(table) {
			unknown = append(unknown, table)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return HydrateResult{}, fmt.Errorf("unknown seed tables: %v", unknown)
	}

	result := HydrateResult{Inserted: map[string]int{}, Failed: map[string]int{}}
	for _, table := range hydrateOrder {
		rows, ok := tables[table]
		if !ok {
			continue
		}
		logger.Debug("hydrating table", "table", table, "rows", len(rows))
		for i, raw := range rows {
			if err := hydrateRow(ctx, gdb, table, raw); err != nil {
				logger.Error("hydrate row failed", "table", table, "row", i, "error", err)
				result.Failed[table]++
				continue
			}
			result.Inserted[table]++
		}
	}
	return result, nil
}

func isHydratable(table string) bool {
	for _, known := range hydrateOrder {
		if known == table {
			return true
		}
	}
	return false
}

func hydrateRow(ctx context.Context, gdb *gorm.DB, table string, raw json.RawMessage) error {
	tx := gdb.WithContext(ctx)
	switch table {
	case "users":
		var user User
		if err := json.Unmarshal(raw, &user); err != nil {
			return err
		}
		if err := user.SetPassword(user.Password); err != nil {
			return err
		}
		return tx.Create(&user).Error
	case "campaigns":
		var campaign Campaign
		if err := json.Unmarshal(raw, &campaign); err != nil {
			return err
		}
		return tx.Create(&campaign).Error
	case "visits":
		var visit Visit
		if err := json.Unmarshal(raw, &visit); err != nil {
			return err
		}
		return tx.Create(&visit).Error
	}
	return fmt.Errorf("unknown table %q", table)
}
