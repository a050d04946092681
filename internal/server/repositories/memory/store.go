// Package memory holds in-process implementations of every repository. It
// backs the "memory" database driver and the service tests.
//
// Transactions are serialized and implemented by snapshotting the whole
// store. Writes made outside a transaction wait for the running one to
// finish, so a rollback never discards them.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type entry[T any] struct {
	v   T
	seq int64
}

// table is an id-keyed set of rows remembering insertion order.
type table[T any] struct {
	rows  map[string]entry[T]
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{rows: make(map[string]entry[T]), clone: clone}
}

func (t *table[T]) get(id string) (T, bool) {
	e, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(e.v), true
}

func (t *table[T]) put(id string, v T, seq int64) {
	if e, ok := t.rows[id]; ok {
		seq = e.seq
	}
	t.rows[id] = entry[T]{v: t.clone(v), seq: seq}
}

func (t *table[T]) del(id string) bool {
	_, ok := t.rows[id]
	delete(t.rows, id)
	return ok
}

// filter returns copies of the rows accepted by keep, most recently
// inserted first.
func (t *table[T]) filter(keep func(T) bool) []T {
	es := make([]entry[T], 0, len(t.rows))
	for _, e := range t.rows {
		if keep == nil || keep(e.v) {
			es = append(es, e)
		}
	}
	slices.SortFunc(es, func(a, b entry[T]) int { return cmp.Compare(b.seq, a.seq) })
	out := make([]T, len(es))
	for i, e := range es {
		out[i] = t.clone(e.v)
	}
	return out
}

func (t *table[T]) copy() *table[T] {
	c := newTable(t.clone)
	for id, e := range t.rows {
		c.rows[id] = entry[T]{v: t.clone(e.v), seq: e.seq}
	}
	return c
}

type savedJob struct {
	seekerID string
	jobID    string
	at       time.Time
}

type state struct {
	admins        *table[models.Admin]
	seekers       *table[models.JobSeeker]
	recruiters    *table[models.Recruiter]
	jobs          *table[models.Job]
	applications  *table[models.Application]
	saved         *table[savedJob]
	verifications *table[models.CompanyVerification]
	notifications *table[models.Notification]
	tokens        *table[models.RefreshToken]
}

func newState() *state {
	return &state{
		admins:        newTable(func(a models.Admin) models.Admin { return a }),
		seekers:       newTable(cloneSeeker),
		recruiters:    newTable(func(r models.Recruiter) models.Recruiter { return r }),
		jobs:          newTable(cloneJob),
		applications:  newTable(func(a models.Application) models.Application { return a }),
		saved:         newTable(func(s savedJob) savedJob { return s }),
		verifications: newTable(cloneVerification),
		notifications: newTable(func(n models.Notification) models.Notification { return n }),
		tokens:        newTable(func(t models.RefreshToken) models.RefreshToken { return t }),
	}
}

func (s *state) copy() *state {
	return &state{
		admins:        s.admins.copy(),
		seekers:       s.seekers.copy(),
		recruiters:    s.recruiters.copy(),
		jobs:          s.jobs.copy(),
		applications:  s.applications.copy(),
		saved:         s.saved.copy(),
		verifications: s.verifications.copy(),
		notifications: s.notifications.copy(),
		tokens:        s.tokens.copy(),
	}
}

func cloneSeeker(s models.JobSeeker) models.JobSeeker {
	s.Skills = slices.Clone(s.Skills)
	s.SavedJobs = slices.Clone(s.SavedJobs)
	return s
}

func cloneJob(j models.Job) models.Job {
	j.SkillsRequired = slices.Clone(j.SkillsRequired)
	j.ApplicationIDs = slices.Clone(j.ApplicationIDs)
	return j
}

func cloneVerification(v models.CompanyVerification) models.CompanyVerification {
	v.Documents = slices.Clone(v.Documents)
	if v.ReviewedAt != nil {
		t := *v.ReviewedAt
		v.ReviewedAt = &t
	}
	return v
}

// Store is the shared state behind the memory repositories.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	seq  int64
	st   *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

type txKey struct{}

// inTx reports whether ctx belongs to a transaction running on s.
func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// write locks the store for a mutation and returns the unlock func. Outside
// a transaction it also waits for any running transaction to end.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// Conn returns nil; memory repositories ignore the handle they are given.
func (s *Store) Conn() dbx.DBTX { return nil }

// WithTx runs fn and restores the pre-transaction state when fn fails or
// panics. Repository calls inside fn must use the ctx handed to fn.
func (s *Store) WithTx(ctx context.Context, fn dbx.TxFunc) (err error) {
	if s.inTx(ctx) {
		return fn(ctx, nil)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.st.copy()
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.st = snap
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, s), nil); err != nil {
		rollback()
	}
	return err
}

func byCreatedDesc[T any](created func(T) time.Time) func(a, b T) int {
	return func(a, b T) int { return created(b).Compare(created(a)) }
}
