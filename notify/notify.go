// Package notify - transient success and failure notifications
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// Variant notification variant
type Variant string

const (
	// VariantSuccess the action succeeded
	VariantSuccess Variant = "success"
	// VariantFailure the action failed
	VariantFailure Variant = "failure"
)

// Notification a transient message shown to the user
type Notification struct {
	Variant  Variant
	Title    string
	IssuedAt time.Time
}

// Sink receives notifications
type Sink interface {
	/*
		Notify emit a notification

			@param ctx context.Context - execution context
			@param n Notification - the notification
	*/
	Notify(ctx context.Context, n Notification)
}

// SinkFunc adapts a function into a Sink
type SinkFunc func(ctx context.Context, n Notification)

// Notify emit a notification
func (f SinkFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// Success build a success notification
func Success(title string) Notification {
	return Notification{Variant: VariantSuccess, Title: title, IssuedAt: time.Now()}
}

// Failure build a failure notification
func Failure(title string) Notification {
	return Notification{Variant: VariantFailure, Title: title, IssuedAt: time.Now()}
}

// Recorder Sink which keeps every notification
type Recorder struct {
	lock    sync.Mutex
	entries []Notification
}

// Notify record the notification
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = append(r.entries, n)
}

// All every recorded notification, oldest first
func (r *Recorder) All() []Notification {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Notification{}, r.entries...)
}

// Count the number of recorded notifications of a variant
func (r *Recorder) Count(variant Variant) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, n := range r.entries {
		if n.Variant == variant {
			count++
		}
	}
	return count
}

// Board holds the latest notification of each audience until taken or expired
type Board struct {
	goutils.Component
	lock    sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current map[string]Notification
}

/*
NewBoard define a new notification board

	@param ttl time.Duration - how long a notification stays displayable
	@returns the board
*/
func NewBoard(ttl time.Duration) *Board {
	return &Board{
		Component: goutils.Component{
			LogTags: log.Fields{"package": "routedesk", "module": "notify", "component": "board"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		ttl:     ttl,
		now:     time.Now,
		current: map[string]Notification{},
	}
}

/*
Post replace the displayed notification of an audience

	@param audience string - who the notification is for
	@param n Notification - the notification
*/
func (b *Board) Post(audience string, n Notification) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if n.IssuedAt.IsZero() {
		n.IssuedAt = b.now()
	}
	b.current[audience] = n
	log.WithFields(b.LogTags).
		WithField("variant", n.Variant).
		WithField("title", n.Title).
		Debug("Posted notification")
}

/*
Take pop the displayed notification of an audience

	@param audience string - who the notification is for
	@returns the notification, and whether one was displayable
*/
func (b *Board) Take(audience string) (Notification, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	n, ok := b.current[audience]
	if !ok {
		return Notification{}, false
	}
	delete(b.current, audience)
	if b.ttl > 0 && b.now().Sub(n.IssuedAt) > b.ttl {
		return Notification{}, false
	}
	return n, true
}

// Sink a Sink posting to one audience of the board
func (b *Board) Sink(audience string) Sink {
	return SinkFunc(func(_ context.Context, n Notification) {
		b.Post(audience, n)
	})
}

// Sweep drop every expired notification
func (b *Board) Sweep() {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.ttl <= 0 {
		return
	}
	for audience, n := range b.current {
		if b.now().Sub(n.IssuedAt) > b.ttl {
			delete(b.current, audience)
		}
	}
}
