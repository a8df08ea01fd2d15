// Package console implements a line-based debugging protocol for the
// engine: reset/move/undo/print/go/halt plus depth/hash/noise tuning,
// one command per input line.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/ryokubo/sunfish/pkg/engine"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active atomic.Bool // a Go search is outstanding
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<sfen>] moves ...

				d.ensureInactive(ctx)

				pos := shogi.NewStartPosition().SFEN()
				moveIdx := len(args)
				for i, arg := range args {
					if arg == "moves" {
						moveIdx = i
						break
					}
				}
				if moveIdx > 0 {
					pos = strings.Join(args[0:moveIdx], " ")
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}
				for _, arg := range args[minInt(moveIdx+1, len(args)):] {
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "go", "g":
				d.ensureInactive(ctx)

				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

				results := d.e.Go(ctx)
				d.active.Store(true)

				go func() {
					for r := range results {
						d.searchCompleted(ctx, r)
					}
				}()

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

			case "hash": // size in MB
				if len(args) > 0 {
					hash, _ := strconv.Atoi(args[0])
					d.e.SetHash(uint(hash))
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(uint(noise))
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "halt", "stop":
				d.ensureInactive(ctx)

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, r engine.Result) {
	if !d.active.CompareAndSwap(true, false) {
		return // stale or duplicate result
	}
	if r.Err != nil {
		d.out <- fmt.Sprintf("search error: %v", r.Err)
		return
	}

	d.out <- fmt.Sprintf("bestmove %v", r.Move)
	d.out <- fmt.Sprintf("score %v depth %v nodes %v nps %v", r.Score, r.Info.LastDepth, r.Info.Node, r.Info.Nps)
}

const (
	files      = "    9   8   7   6   5   4   3   2   1"
	horizontal = "  ---------------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	sfen := d.e.Position()
	pos, err := shogi.ParsePosition(sfen)
	if err != nil {
		d.out <- fmt.Sprintf("invalid position: %v", sfen)
		return
	}

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for rank := 0; rank < shogi.NumRanks; rank++ {
		var sb strings.Builder
		sb.WriteString(rankLabel(rank) + vertical)
		for file := 0; file < shogi.NumFiles; file++ {
			pl := pos.At(shogi.NewSquare(file, rank))
			if pl.Empty() {
				sb.WriteString(" ")
			} else {
				sb.WriteString(printPiece(pl.Color, pl.Piece))
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("Black hand: %v", pos.Hand(shogi.Black))
	d.out <- fmt.Sprintf("White hand: %v", pos.Hand(shogi.White))
	d.out <- fmt.Sprintf("sfen: %v", sfen)
	d.out <- ""
}

func rankLabel(rank int) string {
	return string(rune('a' + rank))
}

func printPiece(c shogi.Color, p shogi.Piece) string {
	if c == shogi.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}
