package main

/*

Terminal front-end for the Connect Four MCTS engine.

Play against the engine (default), or run an engine-vs-engine series with
-games. Columns are entered as 1..7, leftmost first.

*/

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-connect4/pkg/bench"
	"github.com/IlikeChooros/go-connect4/pkg/connect4"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
	"github.com/muesli/termenv"
)

func main() {
	var (
		movetime = flag.Int("movetime", 1000, "engine budget per move, in milliseconds")
		cycles   = flag.Int("cycles", 0, "engine budget per move, in search cycles (overrides -movetime)")
		games    = flag.Int("games", 0, "play an engine-vs-engine series of this many games instead")
		human    = flag.String("human", "yellow", "color the human plays: yellow or red")
		dotFile  = flag.String("dot", "", "write the last search tree as Graphviz DOT to this file")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	limits := mcts.DefaultLimits()
	if *cycles > 0 {
		limits.SetCycles(*cycles)
	} else {
		limits.SetMovetime(*movetime)
	}

	if *games > 0 {
		runArena(limits, *games)
		return
	}

	humanColor := connect4.Yellow
	if strings.EqualFold(*human, "red") {
		humanColor = connect4.Red
	}

	if err := runGame(limits, humanColor, *dotFile); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runArena(limits *mcts.Limits, games int) {
	arena := bench.NewArena(
		bench.Player{Name: "engine-1", Limits: limits},
		bench.Player{Name: "engine-2", Limits: limits},
		games,
	)

	stats, err := arena.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "some games failed:", err)
	}
	fmt.Printf("played %d games: engine-1 %d, engine-2 %d, draws %d\n",
		stats.Games, stats.P1Wins, stats.P2Wins, stats.Draws)
}

func runGame(limits *mcts.Limits, humanColor connect4.Color, dotFile string) error {
	output := termenv.NewOutput(os.Stdout)
	session := connect4.NewSession()
	engine := mcts.NewEngine()
	reader := bufio.NewScanner(os.Stdin)

	fmt.Printf("Connect Four, you play %s. Enter a column 1-7.\n\n", humanColor)

	for !session.Result().Terminal() {
		render(output, session.Position())

		var column connect4.Column
		if session.Turn() == humanColor {
			col, quit := promptColumn(output, reader, session)
			if quit {
				return nil
			}
			column = col
		} else {
			snapshot := session.Look()
			col, err := engine.Search(snapshot.History, limits)
			if err != nil {
				return err
			}
			column = col
			fmt.Printf("engine plays column %d (%d cycles, %d cps)\n",
				column+1, engine.Cycles(), engine.Cps())
			slog.Debug("search finished",
				"column", column, "cycles", engine.Cycles(),
				"maxdepth", engine.MaxDepth(), "time_ms", engine.Elapsed())
		}

		if _, err := session.Move(column); err != nil {
			return err
		}
	}

	render(output, session.Position())
	fmt.Println(session.Result())

	if dotFile != "" {
		if err := writeDot(engine, dotFile); err != nil {
			slog.Warn("could not write search tree", "path", dotFile, "err", err)
		}
	}
	return nil
}

// Read a column from the user, re-prompting on anything that is not a
// playable column. Returns quit=true on EOF or "q".
func promptColumn(output *termenv.Output, reader *bufio.Scanner, session *connect4.Session) (connect4.Column, bool) {
	for {
		fmt.Print("your move (1-7): ")
		if !reader.Scan() {
			return 0, true
		}

		input := strings.TrimSpace(reader.Text())
		if input == "q" || input == "quit" {
			return 0, true
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > connect4.NumColumns {
			fmt.Println(output.String("enter a column between 1 and 7").Foreground(termenv.ANSIRed))
			continue
		}

		column := connect4.Column(n - 1)
		if !session.LegalMoves().Contains(column) {
			fmt.Println(output.String("that column is full").Foreground(termenv.ANSIRed))
			continue
		}
		return column, false
	}
}

func render(output *termenv.Output, pos connect4.Position) {
	yellow := output.String("○").Foreground(termenv.ANSIBrightYellow).String()
	red := output.String("●").Foreground(termenv.ANSIBrightRed).String()

	board := pos.String()
	board = strings.ReplaceAll(board, "o", yellow)
	board = strings.ReplaceAll(board, "x", red)

	fmt.Println()
	fmt.Print(board)
	fmt.Println("1 2 3 4 5 6 7")
	fmt.Println()
}

func writeDot(engine *mcts.Engine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Two levels is usually what you want to eyeball root statistics
	return engine.WriteDOT(f, 2)
}
