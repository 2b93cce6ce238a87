package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleshipgame-go/internal/api"
	"github.com/mcoot/battleshipgame-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "bsgame-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/bsgame")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runTextWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "text",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		MatchController: app.MatchController,
		BoardService:    app.BoardService,
		HubManager:      app.HubManager,
		Broadcaster:     app.Broadcaster,
		HistoryStore:    app.HistoryStore,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type matchResponse struct {
	ID         string `json:"id"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`
	HostID     string `json:"host_id"`
	OpponentID string `json:"opponent_id"`
	Winner     string `json:"winner"`
	Turn       string `json:"turn"`
}

type matchListResponse struct {
	Matches []matchResponse `json:"matches"`
}

type shipStatusResponse struct {
	Name   string `json:"name"`
	Size   int    `json:"size"`
	Placed bool   `json:"placed"`
	Hits   int    `json:"hits"`
	Sunk   bool   `json:"sunk"`
}

type fleetViewResponse struct {
	Participant string               `json:"participant"`
	Grid        [][]string           `json:"grid"`
	Ships       []shipStatusResponse `json:"ships"`
}

type targetViewResponse struct {
	Participant string     `json:"participant"`
	Grid        [][]string `json:"grid"`
	ShipsAfloat int        `json:"ships_afloat"`
}

type placeResponse struct {
	Match matchResponse     `json:"match"`
	Fleet fleetViewResponse `json:"fleet"`
}

type shotResponse struct {
	Target      string `json:"target"`
	Coord       string `json:"coord"`
	Hit         bool   `json:"hit"`
	AfloatCount int    `json:"afloat_count"`
}

type fireResponse struct {
	Match   matchResponse  `json:"match"`
	Shot    shotResponse   `json:"shot"`
	Replies []shotResponse `json:"replies"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// fleetShips is the standard fleet in placement order
var fleetShips = []string{"Destroyer", "Submarine", "Cruiser", "Battleship", "Carrier"}

// placeFleet lays each ship at column 1 of successive rows, running east
func placeFleet(t *testing.T, cli *cliRunner, token, matchID string) placeResponse {
	t.Helper()

	rows := []string{"A", "B", "C", "D", "E"}
	var place placeResponse
	for i, ship := range fleetShips {
		output, err := cli.runWithToken(token, "match", "place", matchID, ship,
			"--start", rows[i]+"1", "--orientation", "east")
		require.NoError(t, err, "placing %s: %s", ship, output)
		require.NoError(t, json.Unmarshal([]byte(output), &place))
	}
	return place
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Logout discards the saved token
	output, err = cli.run("player", "logout")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "Logged out", msgResp.Message)

	_, err = cli.run("player", "me")
	assert.Error(t, err, "session should be gone after logout")
}

func TestCLI_MatchCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice opens a pvp match
	output, err = cli1.runWithToken(token1, "match", "create", "--mode", "pvp")
	require.NoError(t, err, "output: %s", output)
	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "awaiting_opponent", match.Status)
	matchID := match.ID
	t.Logf("Created match: %s", matchID)

	// It shows in the open list
	output, err = cli2.runWithToken(token2, "match", "list")
	require.NoError(t, err, "output: %s", output)
	var list matchListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Matches, 1)
	assert.Equal(t, matchID, list.Matches[0].ID)

	// Bob joins
	output, err = cli2.runWithToken(token2, "match", "join", matchID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "placing", match.Status)
	assert.Equal(t, auth2.Player.ID, match.OpponentID)

	// Alice sees the joined match
	output, err = cli1.runWithToken(token1, "match", "get", matchID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "placing", match.Status)

	// Alice abandons before play starts; nobody wins
	output, err = cli1.runWithToken(token1, "match", "abandon", matchID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "abandoned", match.Status)
	assert.Empty(t, match.Winner)
}

func TestCLI_FullSoloMatchFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create player
	output, err := cli.run("player", "guest", "--name", "Admiral")
	require.NoError(t, err, "output: %s", output)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	token := auth.SessionToken

	// Create a solo match
	output, err = cli.runWithToken(token, "match", "create", "--mode", "solo", "--difficulty", "easy")
	require.NoError(t, err, "output: %s", output)
	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Equal(t, "placing", match.Status)
	matchID := match.ID
	t.Logf("Created solo match: %s", matchID)

	// Place the whole fleet; the last placement starts the match
	place := placeFleet(t, cli, token, matchID)
	assert.Equal(t, "in_progress", place.Match.Status)
	assert.Equal(t, "ship", place.Fleet.Grid[0][0])
	for _, s := range place.Fleet.Ships {
		assert.True(t, s.Placed, "%s should be placed", s.Name)
	}

	// Auto-fire until someone's fleet is sunk. Every shot targets a fresh
	// cell, so 100 rounds is a hard ceiling.
	var fire fireResponse
	for i := 0; i < 100; i++ {
		output, err = cli.runWithToken(token, "match", "fire", matchID, "--auto")
		require.NoError(t, err, "fire %d: %s", i, output)
		require.NoError(t, json.Unmarshal([]byte(output), &fire))
		assert.NotEmpty(t, fire.Shot.Coord)
		if fire.Match.Status == "complete" {
			break
		}
	}

	require.Equal(t, "complete", fire.Match.Status, "match should finish within 100 auto shots")
	assert.Contains(t, []string{auth.Player.ID, "Computer"}, fire.Match.Winner)
	t.Logf("Match complete, winner: %s", fire.Match.Winner)

	// The text renderer draws both boards
	output, err = cli.runTextWithToken(token, "match", "board", matchID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, " A |")
	assert.Contains(t, output, "10")
	assert.Contains(t, output, "Ships:")

	output, err = cli.runTextWithToken(token, "match", "target", matchID)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Ships afloat:")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Get non-existent match
	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "match", "get", "nothere1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
