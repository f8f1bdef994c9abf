package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rsucco/doubleskunk/service/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Players:     2,
		Difficulty:  "hard",
		TargetScore: 121,
		Heels:       true,
		Seed:        11,
		Workers:     2,
		LogLevel:    "error",
		LogFormat:   "text",
		Games:       1,
	}
}

func init() {
	pterm.DisableColor()
}

func TestCount(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCount([]string{"5h", "5s", "5d", "jc", "5c"}, &out))
	assert.Contains(t, out.String(), "Total score: 29")
}

func TestCountCribFlush(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCount([]string{"-crib", "2h", "4h", "6h", "8h", "kc"}, &out))
	assert.Contains(t, out.String(), "Total score: 0")
}

func TestCountWrongSize(t *testing.T) {
	err := runCount([]string{"5h", "5s", "5d"}, io.Discard)
	require.Error(t, err)
}

func TestCountBadCard(t *testing.T) {
	err := runCount([]string{"5h", "5s", "5d", "jc", "zz"}, io.Discard)
	require.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	var out bytes.Buffer
	err := runAnalyze(context.Background(), testConfig(), []string{"-top", "3", "5h", "5s", "5d", "jc", "kh", "2c"}, &out)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "as dealer")
	assert.Contains(t, s, "Net")
}

func TestAnalyzePone(t *testing.T) {
	var out bytes.Buffer
	err := runAnalyze(context.Background(), testConfig(), []string{"-pone", "5h", "5s", "5d", "jc", "kh", "2c"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "as pone")
}

func TestAnalyzeTooFewCards(t *testing.T) {
	err := runAnalyze(context.Background(), testConfig(), []string{"5h", "5s", "5d", "jc"}, io.Discard)
	require.Error(t, err)
}

func TestSimulate(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var out bytes.Buffer
	err := runSimulate(context.Background(), testConfig(), logger, []string{"-games", "2", "-difficulty", "medium"}, &out)
	require.NoError(t, err)
	s := out.String()
	assert.Contains(t, s, "2 games at medium")
	assert.Contains(t, s, "ai1")
	assert.Contains(t, s, "ai2")
}

func TestSimulateInvalidPlayers(t *testing.T) {
	err := runSimulate(context.Background(), testConfig(), logrus.New(), []string{"-players", "5"}, io.Discard)
	require.Error(t, err)
}

func TestSimulationSeeds(t *testing.T) {
	g0, ai0 := simulationSeeds(12345, 0, 3)
	g1, ai1 := simulationSeeds(12345, 1, 3)
	assert.NotEqual(t, g0, g1)
	require.Len(t, ai0, 3)
	for s := range ai0 {
		assert.NotEqual(t, ai0[s], ai1[s], "seat %d reuses its seed across games", s)
		assert.NotZero(t, ai0[s])
	}
	assert.NotEqual(t, ai0[0], ai0[1])

	again, aiAgain := simulationSeeds(12345, 1, 3)
	assert.Equal(t, g1, again)
	assert.Equal(t, ai1, aiAgain)

	wrapped, _ := simulationSeeds(0, 0, 2)
	assert.NotZero(t, wrapped)
}
