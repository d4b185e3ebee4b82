package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolConfigDefaults(t *testing.T) {
	got := PoolConfig{}.withDefaults()
	assert.Equal(t, int32(25), got.MaxConns)
	assert.Equal(t, int32(2), got.MinConns)
	assert.Equal(t, 5*time.Minute, got.MaxConnIdleTime)
	assert.Equal(t, 10*time.Second, got.PingTimeout)

	small := PoolConfig{MaxConns: 1, MinConns: 4}.withDefaults()
	assert.Equal(t, int32(1), small.MinConns)
}
