// Package shell is the interactive front end: load a puzzle, kick off
// exact or heuristic solves, watch progress, and inspect recorded runs.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"lukechampine.com/frand"

	"github.com/tessellar/tessera/analysis"
	"github.com/tessellar/tessera/board"
	"github.com/tessellar/tessera/config"
	"github.com/tessellar/tessera/etio"
	"github.com/tessellar/tessera/generator"
	"github.com/tessellar/tessera/runlog"
	"github.com/tessellar/tessera/solver"
	"github.com/tessellar/tessera/tiles"
)

type ShellController struct {
	l       *readline.Instance
	cfg     config.Config
	printer *message.Printer

	puzzleName string
	puzzle     *etio.PuzzleFile
	ts         *tiles.TileSet
	b          *board.Board

	solving     bool
	solveCancel context.CancelFunc
	solveWG     sync.WaitGroup

	store *runlog.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mtessera>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{
		l:       l,
		cfg:     cfg,
		printer: message.NewPrinter(language.English),
	}
	if cfg.DBPath != "" {
		store, err := runlog.Open(cfg.DBPath)
		if err != nil {
			log.Err(err).Str("path", cfg.DBPath).Msg("runlog-open")
		} else {
			sc.store = store
		}
	}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) loadPieces(path string) error {
	pf, err := etio.LoadPieces(path)
	if err != nil {
		return err
	}
	return sc.setPuzzle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), pf)
}

func (sc *ShellController) setPuzzle(name string, pf *etio.PuzzleFile) error {
	ts, err := tiles.Remap(pf.Raw)
	if err != nil {
		return err
	}
	if err := ts.Validate(pf.Rows, pf.Cols); err != nil {
		return err
	}
	sc.puzzleName = name
	sc.puzzle = pf
	sc.ts = ts
	sc.b = board.New(ts, pf.Rows, pf.Cols)
	sc.showMessage(fmt.Sprintf("loaded %s: %dx%d, %d frame colors, %d inner colors, max score %d",
		name, pf.Rows, pf.Cols, ts.FrameColors(), ts.InnerColors(), sc.b.MaxScore()))
	return nil
}

func (sc *ShellController) startSolve(heuristic, exhaustive bool) error {
	if sc.b == nil {
		return errors.New("please load a puzzle first with the `load` command")
	}
	if sc.solving {
		return errors.New("already solving; use `stop` first")
	}
	cfg := sc.cfg
	cfg.Exhaustive = exhaustive
	s, err := solver.NewSolver(sc.b, cfg)
	if err != nil {
		return err
	}
	s.SetProgress(func(p solver.Progress) {
		sc.showMessage(sc.printer.Sprintf("depth %d score %d (nodes %d, restarts %d, solutions %d)",
			p.BestDepth, p.Score, p.Nodes, p.Restarts, p.Solutions))
	})
	ctx, cancel := context.WithCancel(context.Background())
	sc.solving = true
	sc.solveCancel = cancel
	mode := "exact"
	if heuristic {
		mode = "heuristic"
	}
	sc.showMessage("starting " + mode + " solve; `stop` to interrupt")

	sc.solveWG.Add(1)
	go func() {
		defer sc.solveWG.Done()
		defer cancel()
		tstart := time.Now()
		var outcome solver.Outcome
		var err error
		if heuristic {
			outcome, err = s.SolveHeuristic(ctx)
		} else {
			outcome, err = s.Solve(ctx)
		}
		if err != nil && !errors.Is(err, solver.ErrNoSolution) {
			sc.showError(err)
			sc.solving = false
			return
		}
		switch outcome {
		case solver.OutcomeSolved:
			sc.showMessage(sc.printer.Sprintf("solved: score %d, %d nodes, %d solutions",
				sc.b.Score(), s.Nodes(), s.Solutions()))
		case solver.OutcomeExhausted:
			sc.showMessage("warning: search exhausted; no solution under current constraints")
		case solver.OutcomeStopped, solver.OutcomeStalled:
			sc.showMessage(sc.printer.Sprintf("stopped: best score %d at depth %d after %d nodes",
				sc.b.Score(), s.BestDepth(), s.Nodes()))
		}
		sc.showMessage(sc.b.ToDisplayText())
		sc.recordRun(s, tstart)
		sc.solving = false
	}()
	return nil
}

func (sc *ShellController) recordRun(s *solver.Solver, tstart time.Time) {
	if sc.store == nil {
		return
	}
	err := sc.store.AddRun(context.Background(), runlog.Run{
		Puzzle:    sc.puzzleName,
		Seed:      sc.cfg.Seed,
		Score:     sc.b.Score(),
		BestDepth: s.BestDepth(),
		Nodes:     s.Nodes(),
		Restarts:  s.Restarts(),
		Duration:  time.Since(tstart),
		Board:     sc.b.ToDisplayText(),
	})
	if err != nil {
		log.Err(err).Msg("runlog-add")
	}
}

func (sc *ShellController) stopSolve() error {
	if !sc.solving {
		return errors.New("no running solve to stop")
	}
	sc.solveCancel()
	sc.solveWG.Wait()
	return nil
}

func (sc *ShellController) generate(args []string) error {
	if len(args) < 4 {
		return errors.New("usage: gen <rows> <cols> <framecolors> <innercolors> [file]")
	}
	nums := make([]int, 4)
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return fmt.Errorf("bad number %q", args[i])
		}
		nums[i] = n
	}
	pf, err := generator.Generate(nums[0], nums[1], nums[2], nums[3], frand.New())
	if err != nil {
		return err
	}
	name := fmt.Sprintf("generated-%dx%d", nums[0], nums[1])
	if len(args) > 4 {
		f, err := os.Create(args[4])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := etio.WritePieces(f, pf); err != nil {
			return err
		}
		name = strings.TrimSuffix(filepath.Base(args[4]), filepath.Ext(args[4]))
		sc.showMessage("wrote " + args[4])
	}
	return sc.setPuzzle(name, pf)
}

func (sc *ShellController) stats() error {
	if sc.store == nil {
		return errors.New("run database is disabled (empty db_path)")
	}
	if sc.puzzleName == "" {
		return errors.New("load a puzzle first")
	}
	scores, err := sc.store.Scores(context.Background(), sc.puzzleName)
	if err != nil {
		return err
	}
	return analysis.Summary(sc.l.Stderr(), scores)
}

func (sc *ShellController) handle(line string, sig chan os.Signal) error {
	args, err := shellquote.Split(line)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "load":
		if len(rest) != 1 {
			sc.showError(errors.New("usage: load <piecefile>"))
			break
		}
		if err := sc.loadPieces(rest[0]); err != nil {
			sc.showError(err)
		}

	case "gen":
		if err := sc.generate(rest); err != nil {
			sc.showError(err)
		}

	case "show", "s":
		if sc.b == nil {
			sc.showError(errors.New("no puzzle loaded"))
			break
		}
		sc.showMessage(sc.b.ToDisplayText())
		sc.showMessage(sc.printer.Sprintf("score %d of %d", sc.b.Score(), sc.b.MaxScore()))

	case "solve":
		exhaustive := len(rest) > 0 && rest[0] == "all"
		if err := sc.startSolve(false, exhaustive); err != nil {
			sc.showError(err)
		}

	case "heur":
		if err := sc.startSolve(true, false); err != nil {
			sc.showError(err)
		}

	case "stop":
		if err := sc.stopSolve(); err != nil {
			sc.showError(err)
		}

	case "target":
		if len(rest) != 1 {
			sc.showError(errors.New("usage: target <score>"))
			break
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			sc.showError(err)
			break
		}
		sc.cfg.TargetScore = n
		sc.showMessage(fmt.Sprintf("target score set to %d", n))

	case "seed":
		if len(rest) != 1 {
			sc.showError(errors.New("usage: seed <n>"))
			break
		}
		n, err := strconv.ParseUint(rest[0], 10, 64)
		if err != nil {
			sc.showError(err)
			break
		}
		sc.cfg.Seed = n
		sc.showMessage(fmt.Sprintf("seed set to %d", n))

	case "saveboard":
		if len(rest) != 1 {
			sc.showError(errors.New("usage: saveboard <file>"))
			break
		}
		if sc.b == nil {
			sc.showError(errors.New("no puzzle loaded"))
			break
		}
		if err := etio.SaveBoard(rest[0], sc.b); err != nil {
			sc.showError(err)
			break
		}
		sc.showMessage("wrote " + rest[0])

	case "loadboard":
		if len(rest) != 1 {
			sc.showError(errors.New("usage: loadboard <file>"))
			break
		}
		if sc.ts == nil {
			sc.showError(errors.New("load the piece set first"))
			break
		}
		b, err := etio.LoadBoard(rest[0], sc.ts, sc.puzzle.Rows, sc.puzzle.Cols)
		if err != nil {
			sc.showError(err)
			break
		}
		sc.b = b
		sc.showMessage(sc.b.ToDisplayText())

	case "config":
		if err := sc.cfg.Write(sc.l.Stderr()); err != nil {
			sc.showError(err)
		}

	case "stats":
		if err := sc.stats(); err != nil {
			sc.showError(err)
		}

	case "help":
		usage(sc.l.Stderr())

	case "bye", "exit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")

	default:
		sc.showError(fmt.Errorf("unknown command %q; try `help`", cmd))
	}
	return nil
}

// Execute runs a single command line, as if it had been typed at the
// prompt. Used for startup arguments.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.handle(strings.TrimSpace(line), sig)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	if sc.store != nil {
		defer sc.store.Close()
	}

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.handle(line, sig); err != nil {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
