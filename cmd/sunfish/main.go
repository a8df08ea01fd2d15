package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/logw"

	"github.com/ryokubo/sunfish/pkg/engine"
	"github.com/ryokubo/sunfish/pkg/engine/console"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit in plies (zero for the default depth)")
	hash  = flag.Uint("hash", 16, "Transposition table size in MB")
	noise = flag.Uint("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: sunfish [options]

sunfish is a shogi search engine, played through a line-based console
protocol.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}
	e := engine.New(ctx, "sunfish", "ryokubo", engine.WithOptions(opts), engine.WithZobrist(time.Now().UnixNano()))

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
	logw.Infof(ctx, "sunfish exiting")
}
