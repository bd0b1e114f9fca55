package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/classroom-lambda/internal/config"
	"github.com/saulo-duarte/classroom-lambda/internal/metrics"
)

type outcome struct {
	result *ScoreResult
	err    error
}

// Countdown owns a Session and runs its timer on a single goroutine.
// Answer selection and manual submission are funneled through the same
// loop so a tick never races a user action. Calls made before Run starts
// apply to the session directly.
type Countdown struct {
	session  *Session
	interval time.Duration
	actions  chan func(context.Context)
	done     chan struct{}
	final    outcome

	mu      sync.Mutex
	running bool
}

func NewCountdown(session *Session, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{
		session:  session,
		interval: interval,
		actions:  make(chan func(context.Context)),
		done:     make(chan struct{}),
	}
}

// Run blocks until the session is submitted or ctx is cancelled. A
// cancelled countdown leaves the quiz in_progress without writing.
func (c *Countdown) Run(ctx context.Context) (*ScoreResult, error) {
	c.mu.Lock()
	c.running = true
	c.mu.Unlock()
	defer close(c.done)

	if c.session.Submitted() {
		return c.final.result, c.final.err
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			config.WithContext(ctx).WithField("quiz_id", c.session.quiz.ID).
				Info("Countdown stopped before submission")
			c.final = outcome{err: ctx.Err()}
			return nil, ctx.Err()
		case fn := <-c.actions:
			fn(ctx)
		case <-ticker.C:
			res, err := c.session.Tick(ctx)
			if res != nil {
				metrics.ObserveAutoSubmit()
				metrics.ObserveScore(res.Score)
				c.final = outcome{result: res, err: err}
			}
		}
		if c.session.Submitted() {
			return c.final.result, c.final.err
		}
	}
}

// SelectAnswer forwards to the running loop. It is a no-op once the
// countdown has finished.
func (c *Countdown) SelectAnswer(questionID string, optionIndex int) {
	c.do(func(context.Context) {
		c.session.SelectAnswer(questionID, optionIndex)
	})
}

// Submit ends the attempt early. After the loop has finished it returns
// whatever outcome ended it.
func (c *Countdown) Submit() (*ScoreResult, error) {
	ran := c.do(func(ctx context.Context) {
		res, err := c.session.Submit(ctx)
		if res != nil {
			metrics.ObserveScore(res.Score)
		}
		c.final = outcome{result: res, err: err}
	})
	if !ran {
		<-c.done
	}
	return c.final.result, c.final.err
}

// Remaining reports the seconds left as seen by the loop.
func (c *Countdown) Remaining() int {
	remaining := 0
	if !c.do(func(context.Context) { remaining = c.session.Remaining() }) {
		return c.session.Remaining()
	}
	return remaining
}

func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

func (c *Countdown) do(fn func(context.Context)) bool {
	c.mu.Lock()
	if !c.running {
		fn(context.Background())
		c.mu.Unlock()
		return true
	}
	c.mu.Unlock()

	ack := make(chan struct{})
	wrapped := func(ctx context.Context) {
		fn(ctx)
		close(ack)
	}
	select {
	case c.actions <- wrapped:
		<-ack
		return true
	case <-c.done:
		return false
	}
}
