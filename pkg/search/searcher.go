package search

import (
	"context"
	"sync"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// Depth1Ply is the fixed-point unit all search depths are expressed in, so
// extensions and reductions can use halves and quarters of a ply.
const Depth1Ply = 8

const (
	futilityMargin  = 400
	extCheck        = Depth1Ply
	extOneRep       = Depth1Ply / 2
	extRecapture    = Depth1Ply / 4
	nullMoveReduce  = Depth1Ply * 7 / 2
	iidThreshold    = Depth1Ply * 3
	nullMoveMinimum = Depth1Ply * 2
)

// Config holds the tunables a Searcher is run with; all fields may be
// changed between calls via SetConfig.
type Config struct {
	MaxDepth     int
	TreeSize     int
	WorkerSize   int
	LimitEnable  bool
	LimitSeconds float64
	Ponder       bool
}

// DefaultConfig is a conservative single-threaded, fixed-small-depth
// configuration suitable as a starting point.
func DefaultConfig() Config {
	return Config{MaxDepth: 6, TreeSize: 1, WorkerSize: 1}
}

// Searcher is the iterative-deepening alpha-beta search engine: one
// instance owns its transposition table, history/killer/gains tables, SEE
// cache and SHEK table, all of which persist across calls unless
// explicitly cleared. Constructed once with a reference to an Evaluator.
type Searcher struct {
	evaluator Evaluator
	zt        *shogi.ZobristTable

	mu     sync.Mutex
	config Config

	tt      *TranspositionTable
	history *History
	killers *Killers
	gains   *Gains
	see     *SeeTable
	shek    *ShekTable
	record  *Record

	timer           Timer
	forceInterrupt  atomic.Bool
	running         atomic.Bool

	infoMu sync.Mutex
	info   Info
}

// zobristSeed is arbitrary but fixed: the table only needs to be stable
// for the lifetime of one process, since TT/SHEK entries never cross a
// process boundary.
const zobristSeed = 0x5ea5045e

// NewSearcher constructs a Searcher with the given evaluator and initial
// configuration, allocating a transposition table of ttSize bytes.
func NewSearcher(ctx context.Context, evaluator Evaluator, config Config, ttSize uint64) *Searcher {
	return &Searcher{
		evaluator: evaluator,
		zt:        shogi.NewZobristTable(zobristSeed),
		config:    config,
		tt:        NewTranspositionTable(ctx, ttSize),
		history:   NewHistory(),
		killers:   NewKillers(StackSize),
		gains:     NewGains(),
		see:       NewSeeTable(),
		shek:      NewShekTable(),
		record:    NewRecord(shogi.NewStartPosition()),
	}
}

func (s *Searcher) SetConfig(c Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = c
}

func (s *Searcher) GetConfig() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Searcher) GetInfo() Info {
	s.infoMu.Lock()
	defer s.infoMu.Unlock()
	return s.info
}

func (s *Searcher) ClearTT() {
	s.tt.Clear()
}

func (s *Searcher) ClearHistory() {
	s.history = NewHistory()
	s.killers = NewKillers(StackSize)
	s.gains = NewGains()
}

// ClearRecord resets the move history used for SHEK priming to an empty
// record at the standard starting position.
func (s *Searcher) ClearRecord() {
	s.record = NewRecord(shogi.NewStartPosition())
}

// SetRecord installs r as the move history SHEK is primed from at the
// start of the next search.
func (s *Searcher) SetRecord(r *Record) {
	s.record = r
}

func (s *Searcher) ForceInterrupt() {
	s.forceInterrupt.Store(true)
}

func (s *Searcher) IsRunning() bool {
	return s.running.Load()
}

func (s *Searcher) isInterrupted(ctx context.Context) bool {
	if s.forceInterrupt.Load() {
		return true
	}
	if isContextDone(ctx) {
		return true
	}
	cfg := s.GetConfig()
	return cfg.LimitEnable && s.timer.Get() >= cfg.LimitSeconds
}

// isContextDone reports whether ctx has been cancelled. This is the
// stand-in for seekerror/stdlib's contextx.IsCancelled in this module:
// the search hot path calls it at exactly the points the original
// polls its atomic forceInterrupt flag.
func isContextDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// before runs once at the start of search/idsearch: resets info, resets
// the timer, bumps the TT generation, halves history, and primes SHEK by
// replaying the move record from its initial position.
func (s *Searcher) before(ctx context.Context) *shogi.Game {
	s.forceInterrupt.Store(false)
	s.running.Store(true)

	s.infoMu.Lock()
	s.info.Reset()
	s.infoMu.Unlock()

	s.timer.Set()
	s.tt.Evolve()
	s.history.Reduce()

	g := shogi.NewGame(s.zt, s.record.InitialPosition())
	for i := 0; i < s.record.Count(); i++ {
		m, _ := s.record.MoveAt(i)
		s.shek.Set(g.Hash(), g.Position().Hand(g.Turn()))
		if !g.PushMove(m) {
			logw.Errorf(ctx, "search: record move %v illegal at ply %v, aborting shek priming", m, i)
			return g
		}
	}
	s.shek.Set(g.Hash(), g.Position().Hand(g.Turn()))
	return g
}

// after runs once the search returns: unwinds SHEK exactly as before
// pushed it, and records timing/summary info.
func (s *Searcher) after(ctx context.Context, g *shogi.Game, best shogi.Move, lastDepth int) {
	cur := g
	for {
		s.shek.Unset(cur.Hash(), cur.Position().Hand(cur.Turn()))
		if _, ok := cur.PopMove(); !ok {
			break
		}
	}

	s.infoMu.Lock()
	s.info.Time = s.timer.Get()
	if s.info.Time > 0 {
		s.info.Nps = uint64(float64(s.info.Node) / s.info.Time)
	}
	s.info.Move = best
	s.info.LastDepth = lastDepth
	s.infoMu.Unlock()

	s.running.Store(false)
}
