package database

import (
	"strings"
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"debug":   gormlogger.Info,
		"info":    gormlogger.Warn,
		"warn":    gormlogger.Warn,
		"error":   gormlogger.Error,
		"unknown": gormlogger.Warn,
	}
	for in, want := range cases {
		if got := GormLogLevel(in); got != want {
			t.Errorf("GormLogLevel(%q) = %v，期望 %v", in, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("读取内嵌迁移目录失败: %v", err)
	}
	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Errorf("迁移文件应成对出现，up=%d down=%d", up, down)
	}
}

func TestMigrations_NoUnusableTitleIndex(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_create_assessments.up.sql")
	if err != nil {
		t.Fatalf("读取迁移失败: %v", err)
	}
	// 标题检索为 ILIKE '%x%'，B-tree 表达式索引无法命中
	if strings.Contains(string(up), "LOWER(title)") {
		t.Error("不应创建 LOWER(title) 索引")
	}
	for _, idx := range []string{"idx_assessments_date_assigned", "idx_assessments_status"} {
		if !strings.Contains(string(up), idx) {
			t.Errorf("缺少索引 %s", idx)
		}
	}
}
