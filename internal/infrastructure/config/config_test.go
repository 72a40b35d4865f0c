package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  mode: test
database:
  host: 127.0.0.1
  port: 3306
  user: root
  password: secret
  dbname: catalog
  loc: Asia/Shanghai
cache:
  enabled: true
  detail_ttl: 5m
log:
  level: debug
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadFrom(t *testing.T) {
	t.Run("读取yaml并填充默认值", func(t *testing.T) {
		dir := writeConfig(t, "config", sampleYAML)

		cfg, err := LoadFrom("config", dir)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Minute, cfg.Cache.DetailTTL)
		assert.Equal(t, "utf8mb4", cfg.Database.Charset)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.EqualValues(t, 5, cfg.Cache.BreakerThreshold)
		assert.Equal(t, 30*time.Second, cfg.Cache.BreakerTimeout)
		assert.False(t, cfg.Events.Enabled)
		assert.Equal(t, "catalog.events", cfg.Events.Exchange)
		assert.Contains(t, cfg.Database.DSN(), "loc=Asia%2FShanghai")
		assert.Contains(t, cfg.Database.DSN(), "root:secret@tcp(127.0.0.1:3306)/catalog")
	})

	t.Run("环境变量覆盖配置", func(t *testing.T) {
		dir := writeConfig(t, "config", sampleYAML)
		t.Setenv("CATALOG_DATABASE_PASSWORD", "from-env")

		cfg, err := LoadFrom("config", dir)
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Database.Password)
	})

	t.Run("非法端口", func(t *testing.T) {
		dir := writeConfig(t, "config", "server:\n  port: 70000\n")

		_, err := LoadFrom("config", dir)
		assert.ErrorContains(t, err, "无效的服务端口")
	})

	t.Run("开启事件但未配置地址", func(t *testing.T) {
		dir := writeConfig(t, "config", "events:\n  enabled: true\n")

		_, err := LoadFrom("config", dir)
		assert.ErrorContains(t, err, "events.url")
	})

	t.Run("配置文件不存在", func(t *testing.T) {
		_, err := LoadFrom("missing", t.TempDir())
		assert.Error(t, err)
	})
}
