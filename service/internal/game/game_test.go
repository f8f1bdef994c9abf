// internal/game/game_test.go
package game

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	engine "github.com/rsucco/doubleskunk/engine"
	"github.com/rsucco/doubleskunk/engine/agent"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBroadcaster captures game events for testing assertions.
type mockBroadcaster struct {
	mu        sync.Mutex
	allEvents []GameEvent
}

func newMockBroadcaster() *mockBroadcaster {
	return &mockBroadcaster{}
}

func (mb *mockBroadcaster) broadcastFn(ev GameEvent) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.allEvents = append(mb.allEvents, ev)
}

func (mb *mockBroadcaster) countByType(eventType GameEventType) int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	n := 0
	for _, ev := range mb.allEvents {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func (mb *mockBroadcaster) findEventByType(eventType GameEventType) *GameEvent {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := len(mb.allEvents) - 1; i >= 0; i-- {
		if mb.allEvents[i].Type == eventType {
			return &mb.allEvents[i]
		}
	}
	return nil
}

// firstCardPrompter discards the first cards of the hand and plays the
// first legal card.
type firstCardPrompter struct {
	shown []GameEvent
}

func (p *firstCardPrompter) PromptCut(context.Context, int) (int, error) { return 20, nil }

func (p *firstCardPrompter) PromptDiscards(_ context.Context, v DiscardView) ([]engine.Card, error) {
	return v.Hand[:v.Discards], nil
}

func (p *firstCardPrompter) PromptPlay(_ context.Context, v PlayView) (engine.Card, error) {
	return v.Legal[0], nil
}

func (p *firstCardPrompter) Show(ev GameEvent) { p.shown = append(p.shown, ev) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// setupTestGame initializes a CribbageGame with AI players and a mock broadcaster.
func setupTestGame(t *testing.T, rules engine.HouseRules, seed uint64, players ...Player) (*CribbageGame, *mockBroadcaster) {
	t.Helper()
	g, err := NewCribbageGame(rules, seed, quietLogger(), players...)
	require.NoError(t, err)
	mb := newMockBroadcaster()
	g.BroadcastFn = mb.broadcastFn
	return g, mb
}

func aiPlayers(n int, d agent.Difficulty) []Player {
	out := make([]Player, n)
	for i := range out {
		out[i] = NewAIPlayer("ai"+string(rune('1'+i)), d, uint64(100+i), 2)
	}
	return out
}

func TestNewCribbageGamePlayerCount(t *testing.T) {
	_, err := NewCribbageGame(engine.DefaultHouseRules(), 1, quietLogger(), aiPlayers(1, agent.Hard)...)
	assert.ErrorIs(t, err, ErrPlayerCount)

	rules := engine.DefaultHouseRules()
	rules.NumPlayers = 3
	_, err = NewCribbageGame(rules, 1, quietLogger(), aiPlayers(2, agent.Hard)...)
	assert.ErrorIs(t, err, ErrPlayerCount)
}

func TestRunAIGameReachesTarget(t *testing.T) {
	g, mb := setupTestGame(t, engine.DefaultHouseRules(), 42, aiPlayers(2, agent.Hard)...)

	var endCalls int
	var endWinner uuid.UUID
	g.OnGameEnd = func(_ uuid.UUID, winner uuid.UUID, _ map[uuid.UUID]int) {
		endCalls++
		endWinner = winner
	}

	res, err := g.Run(context.Background())
	require.NoError(t, err)

	require.True(t, g.Engine.IsTerminal())
	require.GreaterOrEqual(t, res.WinnerSeat, 0)
	assert.Equal(t, 121, res.Scores[res.Winner])
	assert.Equal(t, engine.SkunkNone, res.Skunks[res.Winner])
	for id, score := range res.Scores {
		if id != res.Winner {
			assert.Less(t, score, 121)
		}
	}
	assert.Equal(t, 1, endCalls)
	assert.Equal(t, res.Winner, endWinner)
	assert.Equal(t, 1, mb.countByType(EventGameStart))
	assert.Equal(t, 1, mb.countByType(EventGameEnd))
	assert.Equal(t, res.Rounds, mb.countByType(EventDeal))
	assert.Zero(t, mb.countByType(EventPrivateDeal), "private events must not be broadcast")

	end := mb.findEventByType(EventGameEnd)
	require.NotNil(t, end)
	require.NotNil(t, end.User)
	assert.Equal(t, res.Winner, end.User.ID)

	_, err = g.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestRunDeterministicPerSeed(t *testing.T) {
	run := func() ([]int, int) {
		g, _ := setupTestGame(t, engine.DefaultHouseRules(), 7, aiPlayers(2, agent.Medium)...)
		res, err := g.Run(context.Background())
		require.NoError(t, err)
		return g.Engine.Scores(), res.Rounds
	}
	s1, r1 := run()
	s2, r2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
}

func TestRunThreePlayers(t *testing.T) {
	rules := engine.DefaultHouseRules()
	rules.NumPlayers = 3
	g, mb := setupTestGame(t, rules, 9, aiPlayers(3, agent.Easy)...)

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 121, res.Scores[res.Winner])
	assert.Len(t, res.Scores, 3)
	assert.Equal(t, 3*res.Rounds, mb.countByType(EventPlayerDiscard))
}

func TestRunHumanAgainstAI(t *testing.T) {
	prompter := &firstCardPrompter{}
	human := NewHumanPlayer("human", prompter)
	g, _ := setupTestGame(t, engine.DefaultHouseRules(), 5, human, NewAIPlayer("ai", agent.Hard, 1, 1))

	res, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Scores[res.Winner] == 121)

	var privateDeals int
	for _, ev := range prompter.shown {
		if ev.Type == EventPrivateDeal {
			privateDeals++
			require.NotNil(t, ev.User)
			assert.Equal(t, 0, ev.User.Seat)
			assert.Len(t, ev.Cards, 6)
		}
	}
	assert.Equal(t, res.Rounds, privateDeals)
}

func TestRunCancelled(t *testing.T) {
	g, _ := setupTestGame(t, engine.DefaultHouseRules(), 3, aiPlayers(2, agent.Hard)...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, g.GameOver)
}

func TestObfuscatedStateHidesOpponentHand(t *testing.T) {
	players := aiPlayers(2, agent.Hard)
	g, _ := setupTestGame(t, engine.DefaultHouseRules(), 11, players...)
	require.NoError(t, g.deal())

	g.Mu.Lock()
	defer g.Mu.Unlock()
	st := g.GetCurrentObfuscatedGameState(players[0].ID())
	require.Len(t, st.Players, 2)
	assert.Equal(t, "discard", st.Phase)
	assert.Len(t, st.Players[0].RevealedHand, 6)
	assert.Empty(t, st.Players[1].RevealedHand)
	assert.Equal(t, 6, st.Players[1].HandSize)
	assert.Nil(t, st.Starter)
	assert.Empty(t, st.Crib)

	for i, c := range st.Players[0].RevealedHand {
		card, err := engine.ParseCard(c.Code)
		require.NoError(t, err)
		assert.Equal(t, g.Engine.Players[0].Hand[i], card)
	}

	outsider := g.GetCurrentObfuscatedGameState(uuid.New())
	assert.Empty(t, outsider.Players[0].RevealedHand)
	assert.Empty(t, outsider.Players[1].RevealedHand)
}

func TestAIPlayerResyncAfterCut(t *testing.T) {
	players := aiPlayers(2, agent.Hard)
	g, _ := setupTestGame(t, engine.DefaultHouseRules(), 21, players...)
	ctx := context.Background()
	require.NoError(t, g.deal())
	require.NoError(t, g.collectDiscards(ctx))
	over, err := g.cut(ctx)
	require.NoError(t, err)
	if over {
		t.Skip("heels ended the game")
	}

	g.Mu.Lock()
	defer g.Mu.Unlock()
	for s, p := range players {
		ai := p.(*AIPlayer)
		assert.True(t, ai.seated)
		assert.Len(t, ai.state.Unseen(), 52-7, "seat %d", s)
		assert.ElementsMatch(t, g.Engine.PegCards(uint8(s)), ai.state.OwnCards())
	}

	// A player that saw no events rebuilds the same view.
	fresh := NewAIPlayer("late", agent.Hard, 5, 1)
	seat := g.Engine.CurrentPlayer
	fresh.Resync(seat, &g.Engine)
	assert.Equal(t, players[seat].(*AIPlayer).state.Unseen(), fresh.state.Unseen())

	view := g.playView(seat)
	card, err := fresh.SelectPlay(ctx, view)
	require.NoError(t, err)
	assert.Contains(t, view.Legal, card)
}

func TestTallyMessages(t *testing.T) {
	h := engine.NewHand(engine.MustParseCards("5h", "5s", "5d", "6d")...).WithStarter(engine.MustParseCards("jc")[0])
	msgs := tallyMessages(engine.Tally(h))
	require.Len(t, msgs, 5)
	assert.True(t, strings.HasPrefix(msgs[0], "15 for 2:"), msgs[0])
	assert.True(t, strings.HasPrefix(msgs[3], "15 for 8:"), msgs[3])
	assert.True(t, strings.HasPrefix(msgs[4], "Pair royal for 14:"), msgs[4])

	h = engine.NewHand(engine.MustParseCards("2h", "3h", "4h", "6h")...).WithStarter(engine.MustParseCards("9c")[0])
	msgs = tallyMessages(engine.Tally(h))
	require.Len(t, msgs, 5)
	assert.True(t, strings.HasPrefix(msgs[3], "3-card run for 9:"), msgs[3])
	assert.True(t, strings.HasPrefix(msgs[4], "4-card flush for 13:"), msgs[4])
}

func TestPegMessages(t *testing.T) {
	goGroup := engine.ScoredGroup{Category: engine.CategoryGo, Points: 1}
	assert.Equal(t, "ann scores 1 point for a go", pegMessage("ann", goGroup))
	heels := engine.ScoredGroup{Category: engine.CategoryHeels, Points: 2}
	assert.Equal(t, "ann scores 2 points for heels", pegMessage("ann", heels))
	assert.Equal(t, "ann wins with a DOUBLE SKUNK", skunkMessage("ann", engine.SkunkDouble))
}

func TestCardCodeParses(t *testing.T) {
	for _, c := range engine.NewDeck() {
		got, err := fromEventCard(&EventCard{Code: cardCode(c)})
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}
