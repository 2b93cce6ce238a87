package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Stream live events from a match over WebSocket",
		Long: `Connect to the match's WebSocket endpoint and stream events in real-time.

Events include:
  - player_joined: An opponent joined the match
  - fleet_placed: A participant finished placing their fleet
  - match_started: Both fleets placed, firing begins
  - shot_fired: A shot was resolved
  - ship_sunk: A shot sank a ship
  - match_complete: The match finished
  - match_abandoned: A participant abandoned the match

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// MatchEvent is one event from the match stream
type MatchEvent struct {
	Type      string          `json:"type"`
	MatchID   string          `json:"match_id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func streamEvents(matchID string, jsonOutput bool) error {
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(eventsURL(cfg.ServerURL, matchID), header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt with a clean close
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	closing := make(chan struct{})
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-interrupt:
			close(closing)
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			_ = conn.Close()
		case <-done:
		}
	}()

	if !jsonOutput {
		fmt.Printf("Watching match %s\n", matchID)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Interrupt-triggered closes are expected
			select {
			case <-closing:
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				if !jsonOutput {
					fmt.Println("Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		if jsonOutput {
			fmt.Println(string(data))
			continue
		}

		var event MatchEvent
		if err := json.Unmarshal(data, &event); err != nil {
			fmt.Println(string(data))
			continue
		}
		fmt.Printf("[%s] %s: %s\n", event.Timestamp.Format("15:04:05"), event.Type, describeEvent(event))
	}
}

// describeEvent renders a one-line description of a known event type,
// falling back to the raw payload
func describeEvent(event MatchEvent) string {
	switch event.Type {
	case "player_joined":
		var p struct {
			DisplayName string `json:"display_name"`
		}
		if json.Unmarshal(event.Payload, &p) == nil && p.DisplayName != "" {
			return fmt.Sprintf("%s joined", p.DisplayName)
		}
	case "fleet_placed":
		var p struct {
			Participant string `json:"participant"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			return fmt.Sprintf("%s placed their fleet", p.Participant)
		}
	case "match_started":
		var p struct {
			Turn string `json:"turn"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			return fmt.Sprintf("firing begins, %s to shoot", p.Turn)
		}
	case "shot_fired":
		var p struct {
			Shooter string `json:"shooter"`
			Coord   string `json:"coord"`
			Hit     bool   `json:"hit"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			outcome := "miss"
			if p.Hit {
				outcome = "hit"
			}
			return fmt.Sprintf("%s fired at %s: %s", p.Shooter, p.Coord, outcome)
		}
	case "ship_sunk":
		var p struct {
			Target string `json:"target"`
			Ship   string `json:"ship"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			return fmt.Sprintf("%s's %s sunk", p.Target, p.Ship)
		}
	case "match_complete":
		var p struct {
			Winner string `json:"winner"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			return fmt.Sprintf("winner %s", p.Winner)
		}
	case "match_abandoned":
		var p struct {
			By string `json:"by"`
		}
		if json.Unmarshal(event.Payload, &p) == nil {
			return fmt.Sprintf("abandoned by %s", p.By)
		}
	}
	return string(event.Payload)
}

// eventsURL converts the HTTP server URL to the match's WebSocket endpoint
func eventsURL(serverURL, matchID string) string {
	base := strings.TrimSuffix(serverURL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/api/v1/matches/" + matchID + "/events"
}
