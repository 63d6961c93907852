package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestApply_KeyMap(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want Input
	}{
		{"a moves left", "a", Input{Left: true}},
		{"j moves left", "J", Input{Left: true}},
		{"left arrow", "\x1b[D", Input{Left: true}},
		{"d moves right", "d", Input{Right: true}},
		{"right arrow", "\x1b[C", Input{Right: true}},
		{"space shoots", " ", Input{Shoot: true}},
		{"enter shoots", "\r", Input{Shoot: true}},
		{"r restarts", "r", Input{Restart: true}},
		{"ctrl-c quits", "\x03", Input{Quit: true}},
		{"up arrow is ignored", "\x1b[A", Input{}},
		{"unknown key", "x", Input{}},
		{"combination", "a \x1b[C", Input{Left: true, Right: true, Shoot: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			s.apply([]byte(tt.keys), now)
			require.Equal(t, tt.want, s.state.at(now))
		})
	}
}

func TestKeyState_HoldWindow(t *testing.T) {
	s := newStream()
	s.apply([]byte("d"), now)

	require.True(t, s.state.at(now.Add(keyHoldDuration-time.Millisecond)).Right)
	require.False(t, s.state.at(now.Add(keyHoldDuration)).Right)
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	s.apply([]byte(" r"), now)
	ResetKeyInput(s)

	require.Equal(t, Input{}, s.state.at(now))
}

func TestReadInput_Drains(t *testing.T) {
	s := newStream()
	s.ch <- 'a'
	s.ch <- ' '

	in := ReadInput(s)
	require.True(t, in.Left)
	require.True(t, in.Shoot)
	require.Equal(t, []byte("a "), in.Pressed)
	require.False(t, in.Closed)

	in = ReadInput(s)
	require.Empty(t, in.Pressed)
}

func TestReadInput_ReportsClosedReader(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	require.Eventually(t, func() bool {
		return ReadInput(s).Closed
	}, time.Second, time.Millisecond)
	require.True(t, ReadInput(s).Closed)
}

func TestInput_Controls(t *testing.T) {
	in := Input{Left: true, Shoot: true}
	require.True(t, in.IsLeftPressed())
	require.False(t, in.IsRightPressed())
	require.True(t, in.IsShootPressed())
}
