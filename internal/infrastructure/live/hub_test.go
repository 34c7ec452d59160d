package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, cancel
}

func TestHub_BroadcastsToRoomSubscribers(t *testing.T) {
	hub, _ := startHub(t)
	upgrader := Upgrader([]string{"*"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room := strings.TrimPrefix(r.URL.Path, "/")
		if err := hub.Serve(&upgrader, w, r, room); err != nil {
			t.Errorf("serve websocket: %v", err)
		}
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/spring-cup", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients("spring-cup") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(context.Background(), usecase.LiveEvent{
		Type:       usecase.LiveMatchUpdated,
		Tournament: "other-cup",
		Payload:    usecase.LiveScorePayload{MatchID: "ignored"},
	})
	hub.Publish(context.Background(), usecase.LiveEvent{
		Type:       usecase.LiveMatchUpdated,
		Tournament: "spring-cup",
		Payload:    usecase.LiveScorePayload{MatchID: "m1", HomeScore: 2, AwayScore: 1},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type       string                   `json:"type"`
		Tournament string                   `json:"tournament"`
		Payload    usecase.LiveScorePayload `json:"payload"`
	}
	require.NoError(t, sonic.Unmarshal(data, &got))
	require.Equal(t, "match.updated", got.Type)
	require.Equal(t, "spring-cup", got.Tournament)
	require.Equal(t, usecase.LiveScorePayload{MatchID: "m1", HomeScore: 2, AwayScore: 1}, got.Payload)
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, _ := startHub(t)

	c := &Client{hub: hub, room: "r", send: make(chan []byte, 1)}
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.Clients("r") == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(context.Background(), usecase.LiveEvent{Type: usecase.LiveMatchUpdated, Tournament: "r"})
	hub.Publish(context.Background(), usecase.LiveEvent{Type: usecase.LiveMatchFinished, Tournament: "r"})

	require.Eventually(t, func() bool { return hub.Clients("r") == 0 }, time.Second, 5*time.Millisecond)

	first, ok := <-c.send
	require.True(t, ok)
	require.Contains(t, string(first), `"match.updated"`)
	_, ok = <-c.send
	require.False(t, ok, "slow client channel must be closed")
}

func TestHub_PublishAfterStopDoesNotBlock(t *testing.T) {
	hub, cancel := startHub(t)
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.Publish(context.Background(), usecase.LiveEvent{Type: usecase.LiveScheduleDelayed, Tournament: "x"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Publish blocked after hub stopped")
	}
}

func TestUpgraderCheckOrigin(t *testing.T) {
	t.Parallel()

	up := Upgrader([]string{"https://app.example.com"})
	cases := map[string]bool{
		"":                        true,
		"https://app.example.com": true,
		"https://evil.example":    false,
	}
	for origin, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/live", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		if got := up.CheckOrigin(r); got != want {
			t.Fatalf("CheckOrigin(%q) got=%v want=%v", origin, got, want)
		}
	}
}
