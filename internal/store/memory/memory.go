package memory

import (
	"context"
	"slices"
	"sync"

	"goodcents/internal/core"
	"goodcents/internal/store"
)

// Store keeps the whole game in process memory. Atomic stages writes on a
// copy and swaps it in only when the callback succeeds.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	player  *core.Player
	job     *core.Job
	time    *core.Time
	flags   core.GameSessionFlags
	txs     []core.Transaction
	seq     int64
	items   []core.OwnedItem
	lessons []core.CompletedLesson
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{st: &state{}}
}

func (s *state) clone() *state {
	c := &state{
		flags:   s.flags,
		seq:     s.seq,
		txs:     slices.Clone(s.txs),
		items:   slices.Clone(s.items),
		lessons: slices.Clone(s.lessons),
	}
	if s.player != nil {
		p := *s.player
		c.player = &p
	}
	if s.job != nil {
		j := *s.job
		c.job = &j
	}
	if s.time != nil {
		t := *s.time
		c.time = &t
	}
	return c
}

func (s *state) getPlayer() (core.Player, error) {
	if s.player == nil {
		return core.Player{}, store.ErrNotFound
	}
	return *s.player, nil
}

func (s *state) getJob() (core.Job, error) {
	if s.job == nil {
		return core.Job{}, store.ErrNotFound
	}
	return *s.job, nil
}

func (s *state) getTime() (core.Time, error) {
	if s.time == nil {
		return core.Time{}, store.ErrNotFound
	}
	return *s.time, nil
}

func (s *state) appendTx(tx core.Transaction) core.Transaction {
	s.seq++
	tx.Seq = s.seq
	s.txs = append(s.txs, tx)
	return tx
}

func (s *state) itemIndex(name string) int {
	return slices.IndexFunc(s.items, func(i core.OwnedItem) bool { return i.Name == name })
}

func (s *state) saveItem(item core.OwnedItem) {
	if i := s.itemIndex(item.Name); i >= 0 {
		s.items[i] = item
		return
	}
	s.items = append(s.items, item)
}

func (s *state) deleteItem(name string) error {
	i := s.itemIndex(name)
	if i < 0 {
		return store.ErrNotFound
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *state) lessonIndex(id int) int {
	return slices.IndexFunc(s.lessons, func(l core.CompletedLesson) bool { return l.LessonID == id })
}

func (s *state) saveLesson(l core.CompletedLesson) {
	if i := s.lessonIndex(l.LessonID); i >= 0 {
		s.lessons[i] = l
		return
	}
	s.lessons = append(s.lessons, l)
}

// view is the transactional handle passed to Atomic callbacks. It works on
// the staged copy without taking the store lock.
type view struct {
	st *state
}

var _ store.Store = (*view)(nil)

func (v *view) GetPlayer(context.Context) (core.Player, error) { return v.st.getPlayer() }
func (v *view) GetJob(context.Context) (core.Job, error) { return v.st.getJob() }
func (v *view) GetTime(context.Context) (core.Time, error) { return v.st.getTime() }
func (v *view) GetFlags(context.Context) (core.GameSessionFlags, error) { return v.st.flags, nil }

func (v *view) SavePlayer(_ context.Context, p core.Player) error {
	v.st.player = &p
	return nil
}

func (v *view) SaveJob(_ context.Context, j core.Job) error {
	v.st.job = &j
	return nil
}

func (v *view) SaveTime(_ context.Context, t core.Time) error {
	v.st.time = &t
	return nil
}

func (v *view) SaveFlags(_ context.Context, f core.GameSessionFlags) error {
	v.st.flags = f
	return nil
}

func (v *view) AppendTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	return v.st.appendTx(tx), nil
}

func (v *view) ListTransactions(context.Context) ([]core.Transaction, error) {
	return slices.Clone(v.st.txs), nil
}

func (v *view) ListOwnedItems(context.Context) ([]core.OwnedItem, error) {
	return slices.Clone(v.st.items), nil
}

func (v *view) GetOwnedItem(_ context.Context, name string) (core.OwnedItem, error) {
	if i := v.st.itemIndex(name); i >= 0 {
		return v.st.items[i], nil
	}
	return core.OwnedItem{}, store.ErrNotFound
}

func (v *view) SaveOwnedItem(_ context.Context, item core.OwnedItem) error {
	v.st.saveItem(item)
	return nil
}

func (v *view) DeleteOwnedItem(_ context.Context, name string) error {
	return v.st.deleteItem(name)
}

func (v *view) ListCompletedLessons(context.Context) ([]core.CompletedLesson, error) {
	return slices.Clone(v.st.lessons), nil
}

func (v *view) GetCompletedLesson(_ context.Context, id int) (core.CompletedLesson, error) {
	if i := v.st.lessonIndex(id); i >= 0 {
		return v.st.lessons[i], nil
	}
	return core.CompletedLesson{}, store.ErrNotFound
}

func (v *view) SaveCompletedLesson(_ context.Context, l core.CompletedLesson) error {
	v.st.saveLesson(l)
	return nil
}

func (v *view) ResetAll(context.Context) error {
	*v.st = state{}
	return nil
}

// Atomic on a view nests into the enclosing transaction.
func (v *view) Atomic(_ context.Context, fn func(tx store.Store) error) error {
	return fn(v)
}

func (s *Store) Atomic(_ context.Context, fn func(tx store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.st.clone()
	if err := fn(&view{st: staged}); err != nil {
		return err
	}
	s.st = staged
	return nil
}

// do runs a single operation against the live state under the lock.
func (s *Store) do(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&view{st: s.st})
}

func (s *Store) GetPlayer(ctx context.Context) (p core.Player, err error) {
	err = s.do(func(v *view) error { p, err = v.GetPlayer(ctx); return err })
	return p, err
}

func (s *Store) SavePlayer(ctx context.Context, p core.Player) error {
	return s.do(func(v *view) error { return v.SavePlayer(ctx, p) })
}

func (s *Store) GetJob(ctx context.Context) (j core.Job, err error) {
	err = s.do(func(v *view) error { j, err = v.GetJob(ctx); return err })
	return j, err
}

func (s *Store) SaveJob(ctx context.Context, j core.Job) error {
	return s.do(func(v *view) error { return v.SaveJob(ctx, j) })
}

func (s *Store) GetTime(ctx context.Context) (t core.Time, err error) {
	err = s.do(func(v *view) error { t, err = v.GetTime(ctx); return err })
	return t, err
}

func (s *Store) SaveTime(ctx context.Context, t core.Time) error {
	return s.do(func(v *view) error { return v.SaveTime(ctx, t) })
}

func (s *Store) GetFlags(ctx context.Context) (f core.GameSessionFlags, err error) {
	err = s.do(func(v *view) error { f, err = v.GetFlags(ctx); return err })
	return f, err
}

func (s *Store) SaveFlags(ctx context.Context, f core.GameSessionFlags) error {
	return s.do(func(v *view) error { return v.SaveFlags(ctx, f) })
}

func (s *Store) AppendTransaction(ctx context.Context, tx core.Transaction) (out core.Transaction, err error) {
	err = s.do(func(v *view) error { out, err = v.AppendTransaction(ctx, tx); return err })
	return out, err
}

func (s *Store) ListTransactions(ctx context.Context) (txs []core.Transaction, err error) {
	err = s.do(func(v *view) error { txs, err = v.ListTransactions(ctx); return err })
	return txs, err
}

func (s *Store) ListOwnedItems(ctx context.Context) (items []core.OwnedItem, err error) {
	err = s.do(func(v *view) error { items, err = v.ListOwnedItems(ctx); return err })
	return items, err
}

func (s *Store) GetOwnedItem(ctx context.Context, name string) (item core.OwnedItem, err error) {
	err = s.do(func(v *view) error { item, err = v.GetOwnedItem(ctx, name); return err })
	return item, err
}

func (s *Store) SaveOwnedItem(ctx context.Context, item core.OwnedItem) error {
	return s.do(func(v *view) error { return v.SaveOwnedItem(ctx, item) })
}

func (s *Store) DeleteOwnedItem(ctx context.Context, name string) error {
	return s.do(func(v *view) error { return v.DeleteOwnedItem(ctx, name) })
}

func (s *Store) ListCompletedLessons(ctx context.Context) (ls []core.CompletedLesson, err error) {
	err = s.do(func(v *view) error { ls, err = v.ListCompletedLessons(ctx); return err })
	return ls, err
}

func (s *Store) GetCompletedLesson(ctx context.Context, id int) (l core.CompletedLesson, err error) {
	err = s.do(func(v *view) error { l, err = v.GetCompletedLesson(ctx, id); return err })
	return l, err
}

func (s *Store) SaveCompletedLesson(ctx context.Context, l core.CompletedLesson) error {
	return s.do(func(v *view) error { return v.SaveCompletedLesson(ctx, l) })
}

func (s *Store) ResetAll(ctx context.Context) error {
	return s.do(func(v *view) error { return v.ResetAll(ctx) })
}
