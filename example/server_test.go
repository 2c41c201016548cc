package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

func TestConfigDefaults(t *testing.T) {
	should := require.New(t)

	var c Config
	should.NoError(conf.LoadFromYamlBytes([]byte("Name: test"), &c))
	should.Equal("test", c.Name)
	should.Equal("tcp://127.0.0.1:9000", c.Addr)
	should.Equal(30*time.Second, c.IdleTimeout)
	should.Equal(100*time.Millisecond, c.TickWidth)
}

func TestConfigFile(t *testing.T) {
	should := require.New(t)

	content, err := os.ReadFile("etc/idle.yaml")
	should.NoError(err)

	var c Config
	should.NoError(conf.LoadFromYamlBytes(content, &c))
	should.Equal("idle", c.Name)
	should.True(c.Multicore)
	should.Equal("console", c.Log.Mode)
}

func TestTickDelay(t *testing.T) {
	var (
		now  = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		tick = 100 * time.Millisecond
		idle = 30 * time.Second
	)

	tests := []struct {
		next time.Time
		name string
		want time.Duration
		ok   bool
	}{
		{name: "nothing pending", want: idle},
		{name: "soon", next: now.Add(2 * time.Second), ok: true, want: 2 * time.Second},
		{name: "within a tick", next: now.Add(time.Millisecond), ok: true, want: tick},
		{name: "already passed", next: now.Add(-time.Second), ok: true, want: tick},
		{name: "beyond the idle timeout", next: now.Add(time.Hour), ok: true, want: idle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tickDelay(now, tt.next, tt.ok, tick, idle))
		})
	}
}
