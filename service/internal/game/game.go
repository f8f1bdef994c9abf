// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	engine "github.com/rsucco/doubleskunk/engine"
	"github.com/sirupsen/logrus"
)

var (
	ErrPlayerCount    = errors.New("player count does not match house rules")
	ErrAlreadyStarted = errors.New("game already started")
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
// It receives the game ID, the winner's ID and the final scores.
type OnGameEndFunc func(gameID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Constants defining the various GameEvent types.
const (
	EventGameStart        GameEventType = "game_start"
	EventCutForDeal       GameEventType = "game_cut_for_deal" // Public: each seat's cut; low card deals.
	EventDeal             GameEventType = "game_deal"         // Public: a new round and its dealer.
	EventPrivateDeal      GameEventType = "private_deal"      // Private: the seat's dealt cards.
	EventPrivateSyncState GameEventType = "private_sync_state"
	EventPlayerDiscard    GameEventType = "player_discard" // Public: a seat threw to the crib (cards hidden).
	EventCut              GameEventType = "game_cut"       // Public: the starter card.
	EventHeels            GameEventType = "game_heels"
	EventPlayerPlay       GameEventType = "player_play"
	EventPlayerGo         GameEventType = "player_go"
	EventSequenceEnd      GameEventType = "game_sequence_end" // Public: count reset after 31, go or last card.
	EventShow             GameEventType = "game_show"         // Public: one hand or the crib counted.
	EventGameEnd          GameEventType = "game_end"
)

// EventUser identifies a seat within a GameEvent payload.
type EventUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name,omitempty"`
	Seat int       `json:"seat"`
}

// EventCard identifies a card within a GameEvent payload.
type EventCard struct {
	Code  string `json:"code"` // e.g. "TH"
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
	Value int    `json:"value,omitempty"`
	Idx   *int   `json:"idx,omitempty"` // Index in hand, if relevant.
}

// GameEvent is the standard structure for broadcasting game state changes and actions.
type GameEvent struct {
	Type     GameEventType `json:"type"`
	User     *EventUser    `json:"user,omitempty"` // The seat acting or targeted.
	Card     *EventCard    `json:"card,omitempty"`
	Cards    []EventCard   `json:"cards,omitempty"`
	Points   int           `json:"points,omitempty"`
	Messages []string      `json:"messages,omitempty"` // Human-readable scoring lines.

	Payload map[string]interface{} `json:"payload,omitempty"`

	State *ObfGameState `json:"state,omitempty"` // Obfuscated state for sync events.
}

// Result summarizes a finished game.
type Result struct {
	GameID     uuid.UUID
	Winner     uuid.UUID
	WinnerSeat int
	Scores     map[uuid.UUID]int
	Skunks     map[uuid.UUID]engine.SkunkLevel
	Rounds     int
}

// CribbageGame drives one game between Players over the engine state machine.
type CribbageGame struct {
	ID    uuid.UUID
	Rules engine.HouseRules

	Engine  engine.GameState // The authoritative game state.
	Players []Player         // Indexed by engine seat.

	Started   bool
	GameOver  bool
	cribShown bool

	Mu sync.Mutex // Protects the fields above.

	BroadcastFn func(ev GameEvent) // Receives every public event.
	OnGameEnd   OnGameEndFunc

	log         *logrus.Entry
	actionIndex int
}

// NewCribbageGame seats players in order. A zero seed uses the clock.
func NewCribbageGame(rules engine.HouseRules, seed uint64, logger *logrus.Logger, players ...Player) (*CribbageGame, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state := engine.NewGame(seed, rules)
	if len(players) != int(state.NumPlayers()) {
		return nil, fmt.Errorf("%d players for %d seats: %w", len(players), state.NumPlayers(), ErrPlayerCount)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id := uuid.New()
	return &CribbageGame{
		ID:      id,
		Rules:   rules,
		Engine:  state,
		Players: players,
		log:     logger.WithField("game", id),
	}, nil
}

// Run plays rounds until a seat reaches the target score. Cancelling ctx
// stops the game between actions.
func (g *CribbageGame) Run(ctx context.Context) (Result, error) {
	g.Mu.Lock()
	if g.Started {
		g.Mu.Unlock()
		return Result{}, ErrAlreadyStarted
	}
	g.Started = true
	g.start()
	g.Mu.Unlock()

	for {
		g.Mu.Lock()
		over := g.Engine.IsTerminal()
		g.Mu.Unlock()
		if over {
			break
		}
		if err := ctx.Err(); err != nil {
			g.log.WithError(err).Warn("game cancelled")
			return Result{}, err
		}
		if err := g.PlayRound(ctx); err != nil {
			g.log.WithError(err).Error("round failed")
			return Result{}, err
		}
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.EndGame(), nil
}

// start cuts for the first deal.
// Assumes lock is held by caller.
func (g *CribbageGame) start() {
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name()
	}
	g.logAction(-1, string(EventGameStart), map[string]interface{}{"players": names, "target": g.Engine.Rules.Target()})
	g.fireEvent(GameEvent{
		Type:    EventGameStart,
		Payload: map[string]interface{}{"players": names, "target": g.Engine.Rules.Target()},
	})

	cuts, dealer := g.Engine.CutForDeal()
	n := int(g.Engine.NumPlayers())
	g.logAction(int(dealer), string(EventCutForDeal), map[string]interface{}{"cuts": engine.CardsString(cuts[:n])})
	g.fireEvent(GameEvent{
		Type:  EventCutForDeal,
		User:  g.eventUser(dealer),
		Cards: toEventCards(cuts[:n]),
	})
}

// PlayRound deals, collects discards, cuts, pegs and counts one round. It
// returns early without error if the game ends mid-round.
func (g *CribbageGame) PlayRound(ctx context.Context) error {
	if err := g.deal(); err != nil {
		return err
	}
	if err := g.collectDiscards(ctx); err != nil {
		return err
	}
	if over, err := g.cut(ctx); err != nil || over {
		return err
	}
	if err := g.peg(ctx); err != nil {
		return err
	}
	return g.show()
}

func (g *CribbageGame) deal() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if err := g.Engine.Deal(); err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	g.cribShown = false
	n := g.Engine.NumPlayers()
	g.logAction(int(g.Engine.Dealer), string(EventDeal), map[string]interface{}{"round": int(g.Engine.Round)})
	g.fireEvent(GameEvent{
		Type:    EventDeal,
		User:    g.eventUser(g.Engine.Dealer),
		Payload: map[string]interface{}{"round": int(g.Engine.Round)},
	})
	for s := uint8(0); s < n; s++ {
		g.firePrivate(s, GameEvent{
			Type:    EventPrivateDeal,
			User:    g.eventUser(s),
			Cards:   toEventCards(g.Engine.HandCards(s)),
			Payload: map[string]interface{}{"players": int(n)},
		})
		state := g.GetCurrentObfuscatedGameState(g.Players[s].ID())
		g.firePrivate(s, GameEvent{Type: EventPrivateSyncState, User: g.eventUser(s), State: &state})
	}
	return nil
}

func (g *CribbageGame) collectDiscards(ctx context.Context) error {
	n := g.Engine.NumPlayers()
	for s := uint8(0); s < n; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Mu.Lock()
		view := g.discardView(s)
		g.Mu.Unlock()

		cards, err := g.Players[s].SelectDiscards(ctx, view)
		if err != nil {
			return fmt.Errorf("seat %d discard: %w", s, err)
		}

		g.Mu.Lock()
		err = g.Engine.Discard(s, cards...)
		if err == nil {
			g.logAction(int(s), string(EventPlayerDiscard), map[string]interface{}{"cards": engine.CardsString(cards)})
			g.fireEvent(GameEvent{
				Type:    EventPlayerDiscard,
				User:    g.eventUser(s),
				Payload: map[string]interface{}{"count": len(cards)},
			})
		}
		g.Mu.Unlock()
		if err != nil {
			return fmt.Errorf("seat %d discard: %w", s, err)
		}
	}
	return nil
}

// discardView builds the seat's view for discarding.
// Assumes lock is held by caller.
func (g *CribbageGame) discardView(s uint8) DiscardView {
	opp := 0
	for _, o := range g.Engine.Opponents(s) {
		opp = max(opp, int(g.Engine.Players[o].Score))
	}
	return DiscardView{
		Seat:     s,
		Hand:     g.Engine.HandCards(s),
		Discards: g.Engine.Rules.DiscardCount(),
		AsDealer: s == g.Engine.Dealer,
		Own:      int(g.Engine.Players[s].Score),
		Opponent: opp,
		Target:   g.Engine.Rules.Target(),
	}
}

// cut has the pone cut the starter. Returns true if heels ended the game.
func (g *CribbageGame) cut(ctx context.Context) (bool, error) {
	g.Mu.Lock()
	pone := g.Engine.Pone()
	deckLen := int(g.Engine.DeckLen)
	g.Mu.Unlock()

	depth, err := g.Players[pone].CutDepth(ctx, deckLen)
	if err != nil {
		return false, fmt.Errorf("seat %d cut: %w", pone, err)
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()
	res, err := g.Engine.Cut(depth)
	if err != nil {
		return false, fmt.Errorf("cut: %w", err)
	}
	starter := toEventCard(res.Starter)
	g.logAction(int(pone), string(EventCut), map[string]interface{}{"starter": res.Starter.String(), "depth": depth})
	g.fireEvent(GameEvent{Type: EventCut, User: g.eventUser(pone), Card: &starter})
	if res.Heels > 0 {
		dealer := g.Engine.Dealer
		group := engine.ScoredGroup{Category: engine.CategoryHeels, Cards: []engine.Card{res.Starter}, Points: res.Heels}
		g.logAction(int(dealer), string(EventHeels), map[string]interface{}{"points": res.Heels})
		g.fireEvent(GameEvent{
			Type:     EventHeels,
			User:     g.eventUser(dealer),
			Card:     &starter,
			Points:   res.Heels,
			Messages: []string{pegMessage(g.Players[dealer].Name(), group)},
		})
	}
	if g.Engine.IsTerminal() {
		return true, nil
	}
	for s, p := range g.Players {
		if r, ok := p.(resyncer); ok {
			r.Resync(uint8(s), &g.Engine)
		}
	}
	return false, nil
}

func (g *CribbageGame) peg(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Mu.Lock()
		if g.Engine.Phase != engine.PhasePegging || g.Engine.IsTerminal() {
			g.Mu.Unlock()
			return nil
		}
		seat := g.Engine.CurrentPlayer
		view := g.playView(seat)
		g.Mu.Unlock()

		card := engine.EmptyCard
		if len(view.Legal) > 0 {
			c, err := g.Players[seat].SelectPlay(ctx, view)
			if err != nil {
				return fmt.Errorf("seat %d play: %w", seat, err)
			}
			card = c
		}

		g.Mu.Lock()
		err := g.applyPlay(seat, card)
		g.Mu.Unlock()
		if err != nil {
			return err
		}
	}
}

// playView builds the current seat's view for pegging.
// Assumes lock is held by caller.
func (g *CribbageGame) playView(seat uint8) PlayView {
	next := g.Engine.NextPlayer(seat)
	for s := next; s != seat; s = g.Engine.NextPlayer(s) {
		if g.Engine.Players[s].PegLen > 0 {
			next = s
			break
		}
	}
	return PlayView{
		Seat:     seat,
		Hand:     g.Engine.PegCards(seat),
		Legal:    g.Engine.LegalPlays(),
		Sequence: g.Engine.SequenceCards(),
		Count:    int(g.Engine.Count),
		NextSeat: next,
	}
}

// applyPlay pegs a card, or says go for EmptyCard, and reports the outcome.
// Assumes lock is held by caller.
func (g *CribbageGame) applyPlay(seat uint8, card engine.Card) error {
	var (
		out engine.PlayOutcome
		err error
	)
	if card == engine.EmptyCard {
		out, err = g.Engine.Go(seat)
	} else {
		out, err = g.Engine.Play(seat, card)
	}
	if err != nil {
		return fmt.Errorf("seat %d play %s: %w", seat, card, err)
	}

	name := g.Players[seat].Name()
	if card == engine.EmptyCard {
		g.logAction(int(seat), string(EventPlayerGo), map[string]interface{}{"count": out.Count})
		g.fireEvent(GameEvent{
			Type:    EventPlayerGo,
			User:    g.eventUser(seat),
			Payload: map[string]interface{}{"count": out.Count},
		})
	} else {
		msgs := make([]string, 0, len(out.Groups))
		for _, grp := range out.Groups {
			msgs = append(msgs, pegMessage(name, grp))
		}
		ec := toEventCard(card)
		g.logAction(int(seat), string(EventPlayerPlay), map[string]interface{}{
			"card":   card.String(),
			"count":  out.Count,
			"points": out.Points,
		})
		g.fireEvent(GameEvent{
			Type:     EventPlayerPlay,
			User:     g.eventUser(seat),
			Card:     &ec,
			Points:   out.Points,
			Messages: msgs,
			Payload:  map[string]interface{}{"count": out.Count},
		})
	}

	if end := out.End; end != nil {
		ev := GameEvent{
			Type:    EventSequenceEnd,
			User:    g.eventUser(end.Player),
			Points:  end.Group.Points,
			Payload: map[string]interface{}{"peggingDone": out.PeggingDone},
		}
		if end.Group.Points > 0 {
			ev.Messages = []string{pegMessage(g.Players[end.Player].Name(), end.Group)}
		}
		g.logAction(int(end.Player), string(EventSequenceEnd), map[string]interface{}{
			"points":      end.Group.Points,
			"peggingDone": out.PeggingDone,
		})
		g.fireEvent(ev)
	}
	return nil
}

func (g *CribbageGame) show() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.Engine.IsTerminal() {
		return nil
	}

	results, err := g.Engine.Show()
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	g.cribShown = true
	starter := toEventCard(g.Engine.Starter)
	for _, r := range results {
		name := g.Players[r.Player].Name()
		msgs := append([]string{handLabel(name, r.IsCrib)}, tallyMessages(r.Tally)...)
		g.logAction(int(r.Player), string(EventShow), map[string]interface{}{
			"crib":   r.IsCrib,
			"hand":   r.Hand.String(),
			"points": r.Points,
			"score":  int(g.Engine.Players[r.Player].Score),
		})
		g.fireEvent(GameEvent{
			Type:     EventShow,
			User:     g.eventUser(r.Player),
			Card:     &starter,
			Cards:    toEventCards(r.Hand.Cards),
			Points:   r.Points,
			Messages: msgs,
			Payload:  map[string]interface{}{"crib": r.IsCrib},
		})
	}
	return nil
}

// EndGame reports the final result. Events and the OnGameEnd callback fire
// only the first time.
// Assumes lock is held by caller.
func (g *CribbageGame) EndGame() Result {
	res := Result{
		GameID:     g.ID,
		WinnerSeat: int(g.Engine.GetWinner()),
		Scores:     make(map[uuid.UUID]int, len(g.Players)),
		Skunks:     make(map[uuid.UUID]engine.SkunkLevel, len(g.Players)),
		Rounds:     int(g.Engine.Round),
	}
	level := engine.SkunkNone
	for s, p := range g.Players {
		res.Scores[p.ID()] = int(g.Engine.Players[s].Score)
		sk := g.Engine.Skunk(uint8(s))
		res.Skunks[p.ID()] = sk
		level = max(level, sk)
	}
	if res.WinnerSeat < 0 {
		return res
	}
	winner := g.Players[res.WinnerSeat]
	res.Winner = winner.ID()
	if g.GameOver {
		return res
	}
	g.GameOver = true

	g.logAction(res.WinnerSeat, string(EventGameEnd), map[string]interface{}{
		"rounds": res.Rounds,
		"skunk":  level.String(),
	})
	g.log.WithFields(logrus.Fields{
		"winner": winner.Name(),
		"scores": g.Engine.Scores(),
		"rounds": res.Rounds,
	}).Info("game over")
	g.fireEvent(GameEvent{
		Type:     EventGameEnd,
		User:     g.eventUser(uint8(res.WinnerSeat)),
		Messages: []string{skunkMessage(winner.Name(), level)},
		Payload: map[string]interface{}{
			"scores": g.Engine.Scores(),
			"skunk":  level.String(),
		},
	})
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, res.Winner, res.Scores)
	}
	return res
}

func (g *CribbageGame) eventUser(seat uint8) *EventUser {
	p := g.Players[seat]
	return &EventUser{ID: p.ID(), Name: p.Name(), Seat: int(seat)}
}

// seatOf returns the engine seat of a player ID, or -1.
func (g *CribbageGame) seatOf(id uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

// fireEvent sends an event to BroadcastFn and every seated player.
// Assumes lock is held by caller.
func (g *CribbageGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
	for _, p := range g.Players {
		p.Notify(ev)
	}
}

// firePrivate sends an event to one seat only.
// Assumes lock is held by caller.
func (g *CribbageGame) firePrivate(seat uint8, ev GameEvent) {
	g.Players[seat].Notify(ev)
}

// logAction records one game action. seat is -1 for game-level actions.
// Assumes lock is held by caller.
func (g *CribbageGame) logAction(seat int, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	fields := logrus.Fields{
		"action_index": g.actionIndex,
		"action":       actionType,
	}
	if seat >= 0 && seat < len(g.Players) {
		fields["seat"] = seat
		fields["player"] = g.Players[seat].Name()
	}
	for k, v := range payload {
		fields[k] = v
	}
	g.log.WithFields(fields).Debug("game action")
}
