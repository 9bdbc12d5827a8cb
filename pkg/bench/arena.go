// Package bench plays series of games between two engine configurations,
// alternating colors between games and tallying the outcomes.
package bench

import (
	"log/slog"

	"github.com/IlikeChooros/go-connect4/pkg/connect4"
	"github.com/IlikeChooros/go-connect4/pkg/mcts"
	"github.com/hashicorp/go-multierror"
)

// One side of the arena: a name for reporting and the per-move budget
type Player struct {
	Name   string
	Limits *mcts.Limits
}

type Stats struct {
	Games  int
	P1Wins int
	P2Wins int
	Draws  int
}

type Arena struct {
	Player1 Player
	Player2 Player
	NGames  int
	logger  *slog.Logger
}

func NewArena(p1, p2 Player, nGames int) *Arena {
	return &Arena{
		Player1: p1,
		Player2: p2,
		NGames:  max(1, nGames),
		logger:  slog.Default(),
	}
}

func (a *Arena) WithLogger(logger *slog.Logger) *Arena {
	a.logger = logger
	return a
}

// Run plays NGames games sequentially. Player1 takes Yellow in even games,
// Red in odd ones. Failed games are skipped and their errors collected,
// the rest of the series still runs.
func (a *Arena) Run() (Stats, error) {
	stats := Stats{}
	var errs *multierror.Error

	engine1 := mcts.NewEngine()
	engine2 := mcts.NewEngine()

	for game := 0; game < a.NGames; game++ {
		p1Color := connect4.Yellow
		if game%2 == 1 {
			p1Color = connect4.Red
		}

		result, err := a.play(engine1, engine2, p1Color)
		if err != nil {
			a.logger.Warn("arena game failed", "game", game, "err", err)
			errs = multierror.Append(errs, err)
			continue
		}

		stats.Games++
		winner, won := result.Winner()
		switch {
		case !won:
			stats.Draws++
		case winner == p1Color:
			stats.P1Wins++
		default:
			stats.P2Wins++
		}

		a.logger.Info("arena game finished",
			"game", game,
			"result", result.String(),
			slog.Group("score",
				a.Player1.Name, stats.P1Wins,
				a.Player2.Name, stats.P2Wins,
				"draws", stats.Draws,
			),
		)
	}

	return stats, errs.ErrorOrNil()
}

// Play a single game to its terminal result
func (a *Arena) play(engine1, engine2 *mcts.Engine, p1Color connect4.Color) (connect4.Result, error) {
	session := connect4.NewSession()

	for !session.Result().Terminal() {
		engine, limits := engine2, a.Player2.Limits
		if session.Turn() == p1Color {
			engine, limits = engine1, a.Player1.Limits
		}

		snapshot := session.Look()
		column, err := engine.Search(snapshot.History, limits)
		if err != nil {
			return connect4.ResultNone, err
		}

		if _, err := session.Move(column); err != nil {
			return connect4.ResultNone, err
		}
	}

	return session.Result(), nil
}
