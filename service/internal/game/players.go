package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	engine "github.com/rsucco/doubleskunk/engine"
	"github.com/rsucco/doubleskunk/engine/agent"
)

// DiscardView is what a seat sees when it must discard to the crib.
type DiscardView struct {
	Seat     uint8
	Hand     []engine.Card
	Discards int // cards to throw
	AsDealer bool
	Own      int
	Opponent int // highest opponent score
	Target   int
}

// PlayView is what a seat sees when it is its turn to peg.
type PlayView struct {
	Seat     uint8
	Hand     []engine.Card // cards not yet pegged
	Legal    []engine.Card
	Sequence []engine.Card
	Count    int
	NextSeat uint8 // seat that replies to this play
}

// Player makes the decisions for one seat. SelectPlay returns
// engine.EmptyCard to say go.
type Player interface {
	ID() uuid.UUID
	Name() string
	Notify(ev GameEvent)
	CutDepth(ctx context.Context, deckLen int) (int, error)
	SelectDiscards(ctx context.Context, view DiscardView) ([]engine.Card, error)
	SelectPlay(ctx context.Context, view PlayView) (engine.Card, error)
}

// AIPlayer is a computer opponent.
type AIPlayer struct {
	id        uuid.UUID
	name      string
	evaluator *agent.Evaluator
	pegger    *agent.PegEngine
	policy    *agent.Policy
	state     agent.AgentState
	seated    bool
}

// NewAIPlayer returns a computer player. The seed fixes its random choices.
func NewAIPlayer(name string, d agent.Difficulty, seed uint64, workers int) *AIPlayer {
	return &AIPlayer{
		id:        uuid.New(),
		name:      name,
		evaluator: agent.NewEvaluator(agent.DefaultCribTables(), agent.WithWorkers(workers)),
		pegger:    agent.NewPegEngine(agent.DefaultPegTuning()),
		policy:    agent.NewPolicy(d, seed),
	}
}

func (a *AIPlayer) ID() uuid.UUID { return a.id }
func (a *AIPlayer) Name() string { return a.name }

// Notify keeps the seat's record of seen cards current.
func (a *AIPlayer) Notify(ev GameEvent) {
	switch ev.Type {
	case EventPrivateDeal:
		cards, err := fromEventCards(ev.Cards)
		if err != nil || ev.User == nil {
			return
		}
		n, _ := ev.Payload["players"].(int)
		a.state = agent.NewAgentState(uint8(ev.User.Seat), uint8(n))
		a.state.ObserveHand(cards)
		a.seated = true
	case EventCut:
		if c, err := fromEventCard(ev.Card); err == nil {
			a.state.ObserveStarter(c)
		}
	case EventPlayerPlay:
		if c, err := fromEventCard(ev.Card); err == nil && ev.User != nil {
			a.state.ObservePlay(uint8(ev.User.Seat), c)
		}
	}
}

// Resync rebuilds the seat's record from the game: its own cards and
// discards, the starter and every card pegged this round.
func (a *AIPlayer) Resync(seat uint8, g *engine.GameState) {
	a.state = agent.NewAgentState(seat, g.NumPlayers())
	a.state.Update(g)
	a.seated = true
}

// CutDepth cuts at random.
func (a *AIPlayer) CutDepth(context.Context, int) (int, error) { return -1, nil }

func (a *AIPlayer) SelectDiscards(ctx context.Context, view DiscardView) ([]engine.Card, error) {
	hand := engine.NewHand(view.Hand...)
	evals, err := a.evaluator.EvaluateDiscards(ctx, hand, engine.Remainder(view.Hand), view.AsDealer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	choice, err := a.policy.ChooseDiscard(evals, agent.ScoreSituation{
		AsDealer: view.AsDealer,
		Own:      view.Own,
		Opponent: view.Opponent,
		Target:   view.Target,
	})
	if err != nil {
		return nil, err
	}
	a.state.ObserveDiscard(choice.Discard)
	return choice.Discard, nil
}

func (a *AIPlayer) SelectPlay(_ context.Context, view PlayView) (engine.Card, error) {
	if len(view.Legal) == 0 {
		return engine.EmptyCard, nil
	}
	if !a.seated {
		a.state = agent.NewAgentState(view.Seat, 0)
		a.state.ObserveHand(view.Hand)
		a.seated = true
	}
	pctx := a.state.PlayContext(view.Legal, view.Sequence, view.Count, view.NextSeat)
	pctx.Hand = view.Hand
	ranked, err := a.pegger.RankPlays(pctx)
	if err != nil {
		return engine.EmptyCard, fmt.Errorf("%s: %w", a.name, err)
	}
	return a.policy.ChoosePlay(ranked), nil
}

// resyncer is implemented by players that rebuild their view from the
// engine state at the start of pegging.
type resyncer interface {
	Resync(seat uint8, g *engine.GameState)
}

// Prompter asks a person for decisions. Input parsing and display live
// behind it.
type Prompter interface {
	PromptCut(ctx context.Context, deckLen int) (int, error)
	PromptDiscards(ctx context.Context, view DiscardView) ([]engine.Card, error)
	PromptPlay(ctx context.Context, view PlayView) (engine.Card, error)
	Show(ev GameEvent)
}

// HumanPlayer delegates every decision to a Prompter.
type HumanPlayer struct {
	id       uuid.UUID
	name     string
	prompter Prompter
}

func NewHumanPlayer(name string, p Prompter) *HumanPlayer {
	return &HumanPlayer{id: uuid.New(), name: name, prompter: p}
}

func (h *HumanPlayer) ID() uuid.UUID { return h.id }
func (h *HumanPlayer) Name() string { return h.name }
func (h *HumanPlayer) Notify(ev GameEvent) { h.prompter.Show(ev) }

func (h *HumanPlayer) CutDepth(ctx context.Context, deckLen int) (int, error) {
	return h.prompter.PromptCut(ctx, deckLen)
}

func (h *HumanPlayer) SelectDiscards(ctx context.Context, view DiscardView) ([]engine.Card, error) {
	return h.prompter.PromptDiscards(ctx, view)
}

func (h *HumanPlayer) SelectPlay(ctx context.Context, view PlayView) (engine.Card, error) {
	if len(view.Legal) == 0 {
		return engine.EmptyCard, nil
	}
	return h.prompter.PromptPlay(ctx, view)
}
