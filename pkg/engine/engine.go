package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/ryokubo/sunfish/pkg/eval"
	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

var version = build.NewVersion(0, 1, 0)

// defaultHashMB is the transposition table size used when no Hash option
// is set.
const defaultHashMB = 16

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit in plies. If zero, DefaultConfig's
	// depth is used.
	Depth uint
	// Hash is the transposition table size in MB. If zero, defaultHashMB
	// is used.
	Hash uint
	// Noise adds centipawn randomness to the leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation: one
// instance owns a position, its move record (for SHEK priming) and a
// Searcher configured from Options.
type Engine struct {
	name, author string

	zt   *shogi.ZobristTable
	seed int64
	opts Options

	mu       sync.Mutex
	game     *shogi.Game
	record   *search.Record
	searcher *search.Searcher
	cancel   context.CancelFunc
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = shogi.NewZobristTable(e.seed)

	_ = e.Reset(ctx, shogi.NewStartPosition().SFEN())

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
	e.applyOptionsLocked()
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
	e.applyOptionsLocked()
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
	e.applyOptionsLocked()
}

// applyOptionsLocked applies the depth option to the existing searcher's
// config; it does not touch the TT, history or position, so tuning an
// option mid-game does not throw away search state. The evaluator (noise)
// and the TT size (hash) are not rebuilt here: they take effect at the
// next Reset.
func (e *Engine) applyOptionsLocked() {
	if e.searcher == nil {
		return
	}
	cfg := search.DefaultConfig()
	if e.opts.Depth > 0 {
		cfg.MaxDepth = int(e.opts.Depth)
	}
	e.searcher.SetConfig(cfg)
}

// Position returns the current position in SFEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.game.Position().SFEN()
}

// Reset resets the engine to a new position given in SFEN format.
func (e *Engine) Reset(ctx context.Context, sfen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, hash=%vMB, noise=%vcp", sfen, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	e.haltSearchIfActiveLocked()

	pos, err := shogi.ParsePosition(sfen)
	if err != nil {
		return err
	}
	e.game = shogi.NewGame(e.zt, pos)
	e.record = search.NewRecord(pos)

	var base search.Evaluator = eval.Linear{}
	if e.opts.Noise > 0 {
		base = eval.NewRandom(base, int(e.opts.Noise), e.seed)
	}

	hashMB := uint64(defaultHashMB)
	if e.opts.Hash > 0 {
		hashMB = uint64(e.opts.Hash)
	}
	cfg := search.DefaultConfig()
	if e.opts.Depth > 0 {
		cfg.MaxDepth = int(e.opts.Depth)
	}
	e.searcher = search.NewSearcher(ctx, base, cfg, hashMB<<20)

	logw.Infof(ctx, "New position: %v", e.game)
	return nil
}

// Move selects the given move, usually an opponent move, given in the
// engine's own From-To[+]/Drop*To notation.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	e.haltSearchIfActiveLocked()

	for _, m := range e.game.Position().GenerateAll(e.game.Turn()) {
		if m.String() != move {
			continue
		}
		if !e.game.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}
		e.record.Append(m)
		e.searcher.SetRecord(e.record)

		logw.Infof(ctx, "Move %v: %v", m, e.game)
		return nil
	}
	return fmt.Errorf("invalid move: %v", move)
}

// TakeBack undoes the latest move. Note that SHEK priming relies on the
// Record, not the Game, so a correct takeback must rebuild both in lockstep.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActiveLocked()

	m, ok := e.game.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}
	e.record = rebuildRecordWithoutLast(e.record)
	e.searcher.SetRecord(e.record)

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

func rebuildRecordWithoutLast(r *search.Record) *search.Record {
	out := search.NewRecord(r.InitialPosition())
	for i := 0; i+1 < r.Count(); i++ {
		m, _ := r.MoveAt(i)
		out.Append(m)
	}
	return out
}

// Result is one completed iterative-deepening search.
type Result struct {
	Move  shogi.Move
	Score search.Value
	Info  search.Info
	Err   error
}

// Go launches a search on the current position and returns a channel that
// receives exactly one Result once the search completes or is halted.
func (e *Engine) Go(ctx context.Context) <-chan Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Go %v", e.game)

	e.haltSearchIfActiveLocked()

	searchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	out := make(chan Result, 1)
	pos := e.game.Position()
	searcher := e.searcher

	go func() {
		move, score, err := searcher.IDSearch(searchCtx, pos)
		out <- Result{Move: move, Score: score, Info: searcher.GetInfo(), Err: err}
		close(out)
	}()
	return out
}

// Halt interrupts the active search, if any.
func (e *Engine) Halt(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")
	e.haltSearchIfActiveLocked()
}

func (e *Engine) haltSearchIfActiveLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if e.searcher != nil {
		e.searcher.ForceInterrupt()
	}
}
