// Command doubleskunk analyzes discards, counts hands and runs AI games.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"
	engine "github.com/rsucco/doubleskunk/engine"
	"github.com/rsucco/doubleskunk/engine/agent"
	"github.com/rsucco/doubleskunk/service/internal/config"
	"github.com/rsucco/doubleskunk/service/internal/game"
	"github.com/rsucco/doubleskunk/service/internal/logging"
	"github.com/sirupsen/logrus"
)

var errUsage = errors.New("usage: doubleskunk analyze|count|simulate [flags] [cards]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(ctx, cfg, args[1:], out)
	case "count":
		return runCount(args[1:], out)
	case "simulate":
		return runSimulate(ctx, cfg, logger, args[1:], out)
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

// colorCard renders a card with a red or black suit.
func colorCard(c engine.Card) string {
	rank := engine.RankString(c.Rank())
	suit := engine.SuitString(c.Suit())
	switch c.Suit() {
	case engine.SuitDiamonds, engine.SuitHearts:
		return rank + pterm.LightRed(suit)
	}
	return rank + pterm.Gray(suit)
}

func colorCards(cards []engine.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		s += colorCard(c)
	}
	return s
}

func runAnalyze(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	pone := fs.Bool("pone", false, "analyze as the pone (the crib is the opponent's)")
	workers := fs.Int("workers", cfg.Workers, "concurrent hand evaluations, 0 for GOMAXPROCS")
	top := fs.Int("top", 15, "rows to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cards, err := engine.ParseCards(fs.Args()...)
	if err != nil {
		return err
	}

	hand := engine.NewHand(cards...)
	ev := agent.NewEvaluator(agent.DefaultCribTables(), agent.WithWorkers(*workers))
	evals, err := ev.EvaluateDiscards(ctx, hand, engine.Remainder(cards), !*pone)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Keep", "Discard", "Mean", "Min", "Max", "Std dev", "Crib", "Net"}}
	for i, e := range evals {
		if i >= *top {
			break
		}
		data = append(data, []string{
			colorCards(e.Retained.Cards),
			colorCards(e.Discard),
			fmt.Sprintf("%.2f", e.MeanPoints),
			fmt.Sprintf("%d (%d)", e.Min.Points, len(e.Min.Starters)),
			fmt.Sprintf("%d (%d)", e.Max.Points, len(e.Max.Starters)),
			fmt.Sprintf("%.2f", e.StdDev),
			fmt.Sprintf("%.2f", e.ExpectedCribPoints),
			fmt.Sprintf("%.2f", e.NetExpectedPoints),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	role := "dealer"
	if *pone {
		role = "pone"
	}
	fmt.Fprintf(out, "Discards for %s as %s\n%s\n", colorCards(cards), role, table)
	return nil
}

func runCount(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("count", flag.ContinueOnError)
	crib := fs.Bool("crib", false, "count as a crib")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cards, err := engine.ParseCards(fs.Args()...)
	if err != nil {
		return err
	}
	if len(cards) != engine.KeepSize+1 {
		return fmt.Errorf("count needs four cards and a starter, got %d: %w", len(cards), engine.ErrInvalidHandSize)
	}

	h := engine.NewHand(cards[:engine.KeepSize]...).WithStarter(cards[engine.KeepSize])
	h.IsCrib = *crib
	data := pterm.TableData{{"Score", "Cards", "Points", "Total"}}
	total := 0
	for _, line := range engine.Tally(h) {
		data = append(data, []string{
			line.Category.String(),
			colorCards(line.Cards),
			fmt.Sprint(line.Points),
			fmt.Sprint(line.Total),
		})
		total = line.Total
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s [%s]\n%s\nTotal score: %d\n", colorCards(h.Cards), colorCard(h.Starter), table, total)
	return nil
}

// simulationSeeds derives the deck seed of one game and the seed of each AI
// seat from the base seed. The game seed is never zero.
func simulationSeeds(base uint64, index, players int) (uint64, []uint64) {
	gameSeed := base + uint64(index)*1000
	if gameSeed == 0 {
		gameSeed = 1
	}
	ai := make([]uint64, players)
	for s := range ai {
		ai[s] = gameSeed*31 + uint64(s) + 1
	}
	return gameSeed, ai
}

func runSimulate(ctx context.Context, cfg config.Config, logger *logrus.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	games := fs.Int("games", cfg.Games, "games to play")
	difficulty := fs.String("difficulty", cfg.Difficulty, "difficulty of every seat: easy, medium or hard")
	players := fs.Int("players", cfg.Players, "seats, 2 or 3")
	seed := fs.Uint64("seed", cfg.Seed, "base seed, 0 for the clock")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Games, cfg.Difficulty, cfg.Players, cfg.Seed = *games, *difficulty, *players, *seed
	if err := cfg.Validate(); err != nil {
		return err
	}

	names := make([]string, cfg.Players)
	wins := make([]int, cfg.Players)
	skunks := make([]int, cfg.Players)
	rounds := 0
	base := cfg.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	for i := 0; i < cfg.Games; i++ {
		gameSeed, aiSeeds := simulationSeeds(base, i, cfg.Players)
		seats := make([]game.Player, cfg.Players)
		for s := range seats {
			names[s] = fmt.Sprintf("ai%d", s+1)
			seats[s] = game.NewAIPlayer(names[s], cfg.DifficultyLevel(), aiSeeds[s], cfg.Workers)
		}
		g, err := game.NewCribbageGame(cfg.HouseRules(), gameSeed, logger, seats...)
		if err != nil {
			return err
		}
		res, err := g.Run(ctx)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		wins[res.WinnerSeat]++
		rounds += res.Rounds
		for s, p := range seats {
			if res.Skunks[p.ID()] != engine.SkunkNone {
				skunks[s]++
			}
		}
	}

	data := pterm.TableData{{"Player", "Wins", "Skunked"}}
	for s := range names {
		data = append(data, []string{names[s], fmt.Sprint(wins[s]), fmt.Sprint(skunks[s])})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d games at %s, %.1f rounds per game\n%s\n",
		cfg.Games, cfg.DifficultyLevel(), float64(rounds)/float64(cfg.Games), table)
	return nil
}
