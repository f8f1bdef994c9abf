package agent

import (
	"math"
	"testing"

	engine "github.com/rsucco/doubleskunk/engine"
)

func card(s string) engine.Card { return engine.MustParseCards(s)[0] }

func TestCribTableLookup(t *testing.T) {
	tables := DefaultCribTables()
	if got := tables.Dealer.Expected(card("5h"), card("5s")); got != 8.5 {
		t.Errorf("dealer 5,5 = %v, want 8.5", got)
	}
	if got := tables.Pone.Expected(card("5h"), card("5s")); got != 7.4 {
		t.Errorf("pone 5,5 = %v, want 7.4", got)
	}
	if got := tables.For(true).Expected(card("2c"), card("3d")); got != 6.9 {
		t.Errorf("dealer 2,3 = %v, want 6.9", got)
	}
	if got := tables.For(false).Expected(card("kc"), card("jd")); got != 4.4 {
		t.Errorf("pone K,J = %v, want 4.4", got)
	}
}

func TestCribTableRowAverage(t *testing.T) {
	tables := DefaultCribTables()
	got := tables.Dealer.RowAverage(card("ac"))
	if want := 52.4 / 13; math.Abs(got-want) > 1e-9 {
		t.Errorf("dealer ace row average = %v, want %v", got, want)
	}
}

func TestDefaultCribTablesAreCopies(t *testing.T) {
	a := DefaultCribTables()
	a.Dealer[4][4] = 0
	b := DefaultCribTables()
	if b.Dealer[4][4] != 8.5 {
		t.Errorf("mutating a returned table leaked: %v", b.Dealer[4][4])
	}
}
