package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedefender/internal/scoreboard"
)

func newTestServer() *Server {
	return NewServer(scoreboard.New(3), log.New(io.Discard))
}

func TestRegisterClient_AssignsUniqueIDs(t *testing.T) {
	s := newTestServer()

	a, err := s.RegisterClient("alice")
	require.NoError(t, err)
	b, err := s.RegisterClient("")
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, "anonymous", b.Username)
	require.Equal(t, 2, s.Players())
}

func TestUnregisterClient_ClosesEvents(t *testing.T) {
	s := newTestServer()
	h, err := s.RegisterClient("alice")
	require.NoError(t, err)

	s.UnregisterClient(h.ID)
	s.UnregisterClient(h.ID)

	_, ok := <-h.EventsCh
	require.False(t, ok)
	require.Zero(t, s.Players())
}

func TestReportScore_RecordsAndBroadcasts(t *testing.T) {
	s := newTestServer()
	alice, _ := s.RegisterClient("alice")
	bob, _ := s.RegisterClient("bob")

	rank := s.ReportScore(alice.ID, 500)
	require.Equal(t, 1, rank)

	ev := <-bob.EventsCh
	require.Equal(t, EventScoreboardChanged, ev.Type)
	require.Equal(t, 1, ev.Rank)

	top := s.TopScores(5)
	require.Len(t, top, 1)
	require.Equal(t, "alice", top[0].Username)
	require.Equal(t, 500, top[0].Score)

	stats := s.Sessions()
	require.Len(t, stats, 2)
	for _, st := range stats {
		if st.ID == alice.ID {
			require.Equal(t, 1, st.Games)
			require.Equal(t, 500, st.BestScore)
		}
	}
}

func TestReportScore_UnknownSession(t *testing.T) {
	s := newTestServer()
	require.Zero(t, s.ReportScore("nope", 1000))
	require.Empty(t, s.TopScores(5))
}

func TestReportScore_NotPlacingDoesNotBroadcast(t *testing.T) {
	s := newTestServer()
	h, _ := s.RegisterClient("alice")
	for _, score := range []int{300, 200, 100} {
		s.ReportScore(h.ID, score)
	}
	for len(h.EventsCh) > 0 {
		<-h.EventsCh
	}

	require.Zero(t, s.ReportScore(h.ID, 50))
	require.Empty(t, h.EventsCh)
}

func TestShutdown_NotifiesAndWaits(t *testing.T) {
	s := newTestServer()
	h, _ := s.RegisterClient("alice")

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	require.True(t, s.Shutdown(2*time.Second))

	_, err := s.RegisterClient("late")
	require.ErrorIs(t, err, ErrShuttingDown)
}

func TestShutdown_TimesOut(t *testing.T) {
	s := newTestServer()
	_, _ = s.RegisterClient("stubborn")

	require.False(t, s.Shutdown(50*time.Millisecond))
	require.Equal(t, 1, s.Players())
}
