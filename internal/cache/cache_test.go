package cache

import (
	"context"
	"testing"
	"time"

	"github.com/blues/dfs/internal/config"
	"github.com/stretchr/testify/assert"
)

// redis未配置时所有操作都必须安全降级，调用方据此回退数据库
func TestNilClientDegradesGracefully(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	var dest map[string]int64
	assert.False(t, c.Get(ctx, "admin:dashboard", &dest))
	assert.Nil(t, dest)

	assert.False(t, c.Set(ctx, "admin:dashboard", map[string]int64{"total": 1}, 5*time.Minute))
	assert.False(t, c.Del(ctx, "admin:dashboard"))

	// Close对空客户端也不产生副作用
	c.Close()
}

func TestInitDisabled(t *testing.T) {
	c := Init(config.RedisConfig{Enabled: false})
	assert.False(t, c.Get(context.Background(), "k", new(int)))
}
