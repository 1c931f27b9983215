// Command primestachio evaluates a handful of summatory number-theoretic
// functions up to a single positional 64-bit upper bound, backed by the
// library's sublinear-memory Dirichlet table rather than a dense sieve of
// the whole range.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/hacatu/nut/dirichlet"
	"github.com/hacatu/nut/sieve"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "primestachio"
	app.Usage = "evaluate summatory number-theoretic functions up to N"
	app.Version = VERSION
	app.ArgsUsage = "N"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "mode",
			Value: "primes",
			Usage: "primes, mertens, or divsum",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: primestachio [--mode=primes|mertens|divsum] N")
		os.Exit(1)
	}
	n, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "invalid upper bound %q\n", c.Args().Get(0))
		os.Exit(1)
	}

	tbl, ok := safeInitTable(n)
	if !ok {
		fmt.Fprintln(os.Stderr, "table allocation failed")
		os.Exit(2)
	}

	switch c.String("mode") {
	case "primes":
		tbl.ComputePi()
		fmt.Println(tbl.At(n))
	case "mertens":
		mu := sieve.MobiusSieve(uint64(tbl.Y))
		mu8 := make([]int8, len(mu))
		copy(mu8, mu)
		tbl.ComputeMertens(mu8)
		fmt.Println(tbl.At(n))
	case "divsum":
		uTbl, ok := safeInitTable(n)
		if !ok {
			fmt.Fprintln(os.Stderr, "table allocation failed")
			os.Exit(2)
		}
		uTbl.ComputeU()
		ones := make([]int64, uTbl.Y+1)
		for i := range ones {
			ones[i] = 1
		}
		dTbl := dirichlet.ConvolveU(uTbl, ones)
		fmt.Println(dTbl.At(n))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", c.String("mode"))
		os.Exit(1)
	}
	return nil
}

// safeInitTable allocates a Dirichlet table over [1, n], reporting ok=false
// instead of letting an oversized allocation panic the process, mirroring
// the original C library's NULL-on-failure allocation contract.
func safeInitTable(n int64) (tbl *dirichlet.Table, ok bool) {
	defer func() {
		if recover() != nil {
			tbl, ok = nil, false
		}
	}()
	return dirichlet.Init(n, 0), true
}
