package main

import (
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// Config is the configuration of the idle connection server.
type Config struct {
	Name string `json:",default=idle"`
	// Addr is the gnet protocol address to listen on.
	Addr      string `json:",default=tcp://127.0.0.1:9000"`
	Multicore bool   `json:",default=true"`
	// IdleTimeout closes connections that stay silent for this long.
	IdleTimeout time.Duration `json:",default=30s"`
	// TickWidth is the resolution of the timer wheel tracking idle connections.
	TickWidth time.Duration `json:",default=100ms"`
	Log       logx.LogConf
}
