package feed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/broadside/sim/internal/sim"
	"github.com/broadside/sim/internal/vmath"
)

func dial(t *testing.T, hub *Hub) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	waitFor(t, func() bool { return hub.Clients() == 1 })
	return conn, ctx
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	conn, ctx := dial(t, hub)

	want := sim.Frame{
		Tick:    7,
		CameraX: 256,
		CameraY: 300,
		Items:   []sim.RenderItem{{ID: 1, Sprite: "player", Category: "player", X: 256, Y: 300, Rotation: 1.5}},
		HUD:     sim.HUD{Score: 3, Tier: "initial", State: "running"},
	}
	if n := hub.Publish(want); n != 1 {
		t.Fatalf("Publish = %d, want 1", n)
	}
	var got sim.Frame
	if err := wsjson.Read(ctx, conn, &got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Tick != want.Tick || got.CameraY != want.CameraY || len(got.Items) != 1 || got.Items[0].Sprite != "player" {
		t.Errorf("frame = %+v, want %+v", got, want)
	}
	if got.HUD.Tier != "initial" {
		t.Errorf("HUD.Tier = %q, want %q", got.HUD.Tier, "initial")
	}
}

func TestHub_CommandsFromClient(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	conn, ctx := dial(t, hub)

	msg := `{"signal":"pause","move":{"x":0,"y":1},"aim":{"x":10,"y":20},"fire":true}`
	if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case cmd := <-hub.Commands():
		if cmd.Signal != SignalPause {
			t.Errorf("Signal = %q, want %q", cmd.Signal, SignalPause)
		}
		in := cmd.Input()
		if in.Move != vmath.V(0, 1) || !in.HasAim || in.Aim != vmath.V(10, 20) || !in.Fire {
			t.Errorf("Input() = %+v", in)
		}
	case <-ctx.Done():
		t.Fatal("no command received")
	}
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub := NewHub(4, zap.NewNop())
	conn, _ := dial(t, hub)
	conn.Close(websocket.StatusNormalClosure, "bye")
	waitFor(t, func() bool { return hub.Clients() == 0 })
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub(1, zap.NewNop())
	slow := &client{id: 1, out: make(chan sim.Frame, 1)}
	hub.add(slow)

	if n := hub.Publish(sim.Frame{Tick: 1}); n != 1 {
		t.Fatalf("first Publish = %d, want 1", n)
	}
	if n := hub.Publish(sim.Frame{Tick: 2}); n != 0 {
		t.Fatalf("second Publish = %d, want 0", n)
	}
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0 after overflow", hub.Clients())
	}
	if f, ok := <-slow.out; !ok || f.Tick != 1 {
		t.Errorf("queued frame = %+v, %v; want tick 1", f, ok)
	}
	if _, ok := <-slow.out; ok {
		t.Error("queue still open after drop")
	}
	// Removing an already dropped client is harmless.
	hub.remove(slow)
}

func TestCommand_EmptyInput(t *testing.T) {
	in := Command{Signal: SignalBegin}.Input()
	if in != (sim.Input{}) {
		t.Errorf("Input() = %+v, want zero", in)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", NewHub(1, zap.NewNop()), zap.NewNop())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
