/*
TOPIARY iteratively prunes low-quality columns from a multiple sequence
alignment to maximize the support of the tree inferred from it. Each round it
removes a batch of the lowest-scoring columns, rebuilds a tree with an
external builder, sums the internal branch supports, and keeps the alignment
that produced the best-supported tree.

usage: topiary [ -f <format> | -c <config> | -s <scores> | -o <prefix> | -p | -h | -v ] <command> <alignment>

commands:

	hist		histogram-driven greedy removal of low-scoring columns
	bisect		binary bisection over the number of columns to remove

positional arguments:

	<alignment>	input multiple sequence alignment

flags:

	-f format
	  	alignment format [ fasta | phylip ] (default "fasta")
	-c file
	  	run config naming the external evaluator and tree builder (default "topiary.toml")
	-s file
	  	precomputed column score file (skips running the evaluator)
	-o prefix
	  	output prefix (default "topiary")
	-p	write a support-per-round plot to <prefix>.png
	-h	prints this message and exits
	-v	prints version number and exits

examples:

	  histogram strategy example:
		topiary -c run.toml hist alignment.fa 2> log.txt

	  bisection strategy example:
		topiary -s columns.scores bisect alignment.fa 2> log.txt
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"topiary/internal/exe"
	"topiary/internal/opt"
	"topiary/internal/prep"
)

const (
	Version    = "v0.2.0"
	ErrMessage = "TOPIARY encountered an error ::"

	Hist Command = iota
	Bisect
)

type Command int

var parseCommand = map[string]Command{
	"hist":   Hist,
	"bisect": Bisect,
}

type args struct {
	command    Command     // hist or bisect
	alnFormat  prep.Format // alignment file format
	alnFile    string      // input alignment
	configFile string      // run config toml
	scoresFile string      // precomputed column scores (optional)
	outPrefix  string      // output prefix
	plot       bool        // write support lineplot
}

func parseArgs() args {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr,
			"usage: topiary [ -f <format> | -c <config> | -s <scores> | -o <prefix> | -p | -h | -v ] <command> <alignment>\n",
			"\n",
			"commands:\n\n",
			"  hist\t\thistogram-driven greedy removal of low-scoring columns\n",
			"  bisect\tbinary bisection over the number of columns to remove\n",
			"\n",
			"positional arguments:\n\n",
			"  <alignment>\tinput multiple sequence alignment\n",
			"\n",
			"flags:\n\n",
		)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr,
			"\n",
			"examples:\n\n",
			"  histogram strategy example:\n",
			"\ttopiary -c run.toml hist alignment.fa 2> log.txt\n\n",
			"  bisection strategy example:\n",
			"\ttopiary -s columns.scores bisect alignment.fa 2> log.txt\n",
		)
	}
	format := prep.Fasta
	flag.Var(&format, "f", "alignment `format` [ fasta | phylip ] (default \"fasta\")")
	config := flag.String("c", "topiary.toml", "run config `file` naming the external tools")
	scores := flag.String("s", "", "precomputed column score `file` (skips the evaluator)")
	prefix := flag.String("o", "topiary", "output `prefix`")
	plot := flag.Bool("p", false, "write a support-per-round plot to <prefix>.png")
	help := flag.Bool("h", false, "prints this message and exits")
	ver := flag.Bool("v", false, "prints version number and exits")
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *ver {
		fmt.Printf("TOPIARY version %s\n", Version)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		parserError("two positional arguments required: <command> <alignment>")
	}
	cmd, ok := parseCommand[flag.Arg(0)]
	if !ok {
		parserError(fmt.Sprintf("\"%s\" is not a valid command: either \"hist\" or \"bisect\" required", flag.Arg(0)))
	}
	return args{
		command:    cmd,
		alnFormat:  format,
		alnFile:    flag.Arg(1),
		configFile: *config,
		scoresFile: *scores,
		outPrefix:  *prefix,
		plot:       *plot,
	}
}

// prints message, usage, and exits (status code 1)
func parserError(message string) {
	fmt.Fprintln(os.Stderr, message)
	flag.Usage()
	os.Exit(1)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("TOPIARY version %s", Version)
	args := parseArgs()
	ctx := context.Background()

	cfg, err := prep.LoadConfig(args.configFile)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	workdir := cfg.Workdir
	if workdir == "" {
		if workdir, err = os.MkdirTemp("", "topiary"); err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
		log.Printf("per-round artifacts in %s", workdir)
	}

	var runner prep.ScoreRunner
	if args.scoresFile == "" {
		if cfg.Evaluator.Cmd == "" {
			log.Fatalf("%s no -s score file and no evaluator in %s\n", ErrMessage, args.configFile)
		}
		runner = exe.Evaluator{Cmd: cfg.Evaluator.Cmd, Args: cfg.Evaluator.Args, Workdir: workdir}
	}
	aln, tab, err := prep.PrepareInputs(ctx, args.alnFile, args.alnFormat, args.scoresFile, runner)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	log.Printf("alignment of %d sequences and %d columns read", aln.NbSequences(), aln.Length())

	rs, err := opt.NewRunState(aln, tab)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	executor := exe.ToolExecutor{
		Builder: exe.Builder{Cmd: cfg.Builder.Cmd, Args: cfg.Builder.Args, Model: cfg.Model},
		Workdir: workdir,
	}
	var strategy opt.Strategy
	switch args.command {
	case Hist:
		log.Println("running histogram strategy...")
		strategy = opt.HistogramStrategy{Exec: executor}
	case Bisect:
		log.Println("running bisection strategy...")
		strategy = opt.BisectionStrategy{Exec: executor}
	default:
		panic(fmt.Sprintf("invalid command (%d)", args.command))
	}
	history, err := strategy.Run(ctx, rs)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}

	best, support := rs.Best()
	log.Printf("best alignment: %d columns with summed support %f", best.Length(), support)
	bestPath := fmt.Sprintf("%s.best.%s", args.outPrefix, args.alnFormat.Ext())
	if err := prep.WriteAlignment(best, args.alnFormat, bestPath); err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	csvPath := fmt.Sprintf("%s.rounds.csv", args.outPrefix)
	csvFile, err := os.Create(csvPath)
	if err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	if err := prep.WriteRecordsToCSV(opt.LabelRecords(history), csvFile); err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	if err := csvFile.Close(); err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	if args.plot {
		if err := prep.WriteSupportLineplot(history, args.outPrefix); err != nil {
			log.Fatalf("%s %s\n", ErrMessage, err)
		}
	}
	log.Println("done.")
}
