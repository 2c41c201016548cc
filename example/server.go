package main

import (
	"context"
	"sync"
	"time"

	"github.com/jiansoft/timerwheel"
	"github.com/panjf2000/gnet/v2"
	"github.com/panjf2000/gnet/v2/pkg/pool/goroutine"
	"github.com/zeromicro/go-zero/core/logx"
)

// idleServer is an echo server that closes connections which stay silent
// for longer than the idle timeout.
//
// Every connection owns one timeout in the wheel, refreshed on traffic.
// The gnet ticker plays the reactor: each tick it polls the expired
// connections and asks the wheel how long it may sleep until the next one.
type idleServer struct {
	gnet.BuiltinEventEngine
	eng  gnet.Engine
	pool *goroutine.Pool
	c    Config

	// mu serializes the event loops and the ticker on the wheel.
	mu    sync.Mutex
	wheel *timerwheel.TimerWheel[gnet.Conn]
}

func newIdleServer(c Config) *idleServer {
	return &idleServer{
		c:    c,
		pool: goroutine.Default(),
		wheel: timerwheel.New[gnet.Conn](
			timerwheel.WithTickWidth(c.TickWidth),
			timerwheel.WithLogger(timerwheel.Logx),
		),
	}
}

func (s *idleServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	logx.Infof("%s listening on %s, idle timeout %v", s.c.Name, s.c.Addr, s.c.IdleTimeout)
	return gnet.None
}

func (s *idleServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	metricConnOpen.Inc()
	if err := s.touch(c); err != nil {
		logx.Errorf("conn(%s) schedule idle timeout: %v", c.RemoteAddr(), err)
		return nil, gnet.Close
	}
	return nil, gnet.None
}

func (s *idleServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, err := c.Next(-1)
	if err != nil {
		logx.Errorf("conn(%s) read: %v", c.RemoteAddr(), err)
		return gnet.Close
	}
	if _, err = c.Write(buf); err != nil {
		logx.Errorf("conn(%s) write: %v", c.RemoteAddr(), err)
		return gnet.Close
	}

	if err = s.touch(c); err != nil {
		logx.Errorf("conn(%s) refresh idle timeout: %v", c.RemoteAddr(), err)
		return gnet.Close
	}
	return gnet.None
}

func (s *idleServer) OnClose(c gnet.Conn, err error) gnet.Action {
	metricConnClose.Inc()
	if t, ok := c.Context().(timerwheel.Timeout); ok {
		s.mu.Lock()
		s.wheel.Cancel(t)
		s.mu.Unlock()
	}
	if err != nil {
		logx.Debugf("conn(%s) closed: %v", c.RemoteAddr(), err)
	}
	return gnet.None
}

func (s *idleServer) OnTick() (time.Duration, gnet.Action) {
	now := time.Now()

	var expired []gnet.Conn
	s.mu.Lock()
	for {
		c, ok, err := s.wheel.Poll(now)
		if err != nil {
			logx.Errorf("poll idle timeouts: %v", err)
			break
		}
		if !ok {
			break
		}
		expired = append(expired, c)
	}
	next, ok := s.wheel.NextTimeout()
	s.mu.Unlock()

	for _, c := range expired {
		c := c
		metricConnTimeout.Inc()
		if err := s.pool.Submit(func() {
			logx.Infof("conn(%s) idle for %v, closing", c.RemoteAddr(), s.c.IdleTimeout)
			if err := c.CloseWithCallback(nil); err != nil {
				logx.Errorf("conn(%s) close: %v", c.RemoteAddr(), err)
			}
		}); err != nil {
			logx.Errorf("conn(%s) pool.Submit error: %v", c.RemoteAddr(), err)
		}
	}

	return tickDelay(now, next, ok, s.c.TickWidth, s.c.IdleTimeout), gnet.None
}

// touch replaces the idle timeout of c with one that expires a full idle
// timeout from now. It runs on the event loop owning c.
func (s *idleServer) touch(c gnet.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := c.Context().(timerwheel.Timeout); ok {
		s.wheel.Cancel(t)
	}

	t, err := s.wheel.Insert(time.Now().Add(s.c.IdleTimeout), c)
	if err != nil {
		return err
	}
	c.SetContext(t)

	return nil
}

func (s *idleServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	logx.Infof("stop engine... error: %v", s.eng.Stop(ctx))
}

// tickDelay decides how long the ticker sleeps. With no pending timeout a
// new connection is at least an idle timeout away from expiring; a next
// timeout already in the past was left behind by a cancellation, so check
// again after one tick.
func tickDelay(now, next time.Time, ok bool, tick, idle time.Duration) time.Duration {
	if !ok {
		return idle
	}

	d := next.Sub(now)
	if d < tick {
		return tick
	}
	if d > idle {
		return idle
	}

	return d
}
