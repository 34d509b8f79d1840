package db

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/npcai/internal/model"
)

// DefaultJournalBuffer is the record queue length of a HealthJournal.
const DefaultJournalBuffer = 256

// writeTimeout bounds one store call. Writes outlive the Run context so that
// shutdown does not abort records already dequeued.
const writeTimeout = 2 * time.Second

// HealthStore is the persistence side of a HealthJournal.
type HealthStore interface {
	SaveSnapshot(ctx context.Context, s HealthSnapshot) error
	RecordDamage(ctx context.Context, e DamageEvent) error
}

type journalRecord struct {
	snapshot HealthSnapshot
	damage   *DamageEvent
}

type trackedOwner struct {
	name string
	last int32
	max  int32
}

// HealthJournal is a model.HealthListener that persists health changes
// asynchronously: notifications are queued and never block the simulation.
// When the queue is full, records are dropped and counted.
type HealthJournal struct {
	store   HealthStore
	records chan journalRecord

	mu     sync.Mutex
	owners map[uint32]*trackedOwner

	dropped atomic.Int64
	written atomic.Int64
}

// NewHealthJournal creates a journal. buffer <= 0 means DefaultJournalBuffer.
func NewHealthJournal(store HealthStore, buffer int) *HealthJournal {
	if buffer <= 0 {
		buffer = DefaultJournalBuffer
	}
	return &HealthJournal{
		store:   store,
		records: make(chan journalRecord, buffer),
		owners:  make(map[uint32]*trackedOwner),
	}
}

// Track names ownerID for persistence. Untracked owners are ignored.
func (j *HealthJournal) Track(ownerID uint32, name string, current, max int32) {
	j.mu.Lock()
	j.owners[ownerID] = &trackedOwner{name: name, last: current, max: max}
	j.mu.Unlock()
}

// HealthChanged queues a snapshot, and a damage event when health went down.
func (j *HealthJournal) HealthChanged(ownerID uint32, current, max int32) {
	j.mu.Lock()
	owner, ok := j.owners[ownerID]
	if !ok {
		j.mu.Unlock()
		return
	}
	amount := owner.last - current
	owner.last = current
	owner.max = max
	name := owner.name
	j.mu.Unlock()

	rec := journalRecord{
		snapshot: HealthSnapshot{Owner: name, Current: current, Max: max, Dead: current <= 0},
	}
	if amount > 0 {
		rec.damage = &DamageEvent{Owner: name, Amount: amount, Remaining: current}
	}
	j.enqueue(rec)
}

// Died queues a dead snapshot.
func (j *HealthJournal) Died(ownerID uint32) {
	j.mu.Lock()
	owner, ok := j.owners[ownerID]
	if !ok {
		j.mu.Unlock()
		return
	}
	snap := HealthSnapshot{Owner: owner.name, Current: owner.last, Max: owner.max, Dead: true}
	j.mu.Unlock()

	j.enqueue(journalRecord{snapshot: snap})
}

func (j *HealthJournal) enqueue(rec journalRecord) {
	select {
	case j.records <- rec:
	default:
		n := j.dropped.Add(1)
		slog.Warn("health journal full, record dropped", "owner", rec.snapshot.Owner, "dropped", n)
	}
}

// Run writes queued records until ctx is canceled, then drains what is left.
func (j *HealthJournal) Run(ctx context.Context) error {
	slog.Info("health journal started")

	wctx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			j.drain(wctx)
			slog.Info("health journal stopped",
				"written", j.written.Load(),
				"dropped", j.dropped.Load())
			return nil

		case rec := <-j.records:
			j.write(wctx, rec)
		}
	}
}

func (j *HealthJournal) drain(ctx context.Context) {
	for {
		select {
		case rec := <-j.records:
			j.write(ctx, rec)
		default:
			return
		}
	}
}

func (j *HealthJournal) write(parent context.Context, rec journalRecord) {
	ctx, cancel := context.WithTimeout(parent, writeTimeout)
	defer cancel()

	if rec.damage != nil {
		if err := j.store.RecordDamage(ctx, *rec.damage); err != nil {
			slog.Error("persisting damage event", "owner", rec.damage.Owner, "err", err)
		}
	}
	if err := j.store.SaveSnapshot(ctx, rec.snapshot); err != nil {
		slog.Error("persisting health snapshot", "owner", rec.snapshot.Owner, "err", err)
		return
	}
	j.written.Add(1)
}

// Dropped returns the number of records lost to a full queue.
func (j *HealthJournal) Dropped() int64 { return j.dropped.Load() }

// Written returns the number of snapshots persisted.
func (j *HealthJournal) Written() int64 { return j.written.Load() }

var _ model.HealthListener = (*HealthJournal)(nil)
