package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Match:
		o.printMatch(v)
	case MatchList:
		o.printMatchList(v)
	case FireResult:
		o.printFireResult(v)
	case PlaceResult:
		o.printPlaceResult(v)
	case FleetView:
		o.printFleetView(v)
	case TargetView:
		o.printTargetView(v)
	case HistoryList:
		o.printHistoryList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Match response type
type Match struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Status     string    `json:"status"`
	HostID     string    `json:"host_id"`
	OpponentID string    `json:"opponent_id,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	Turn       string    `json:"turn,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MatchList response type
type MatchList struct {
	Matches []Match `json:"matches"`
}

// Ship response type
type Ship struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Shot response type
type Shot struct {
	Target      string `json:"target"`
	Coord       string `json:"coord"`
	Hit         bool   `json:"hit"`
	Sunk        *Ship  `json:"sunk,omitempty"`
	AfloatCount int    `json:"afloat_count"`
}

// FireResult response type
type FireResult struct {
	Match   Match  `json:"match"`
	Shot    Shot   `json:"shot"`
	Replies []Shot `json:"replies,omitempty"`
}

// ShipStatus response type
type ShipStatus struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Placed bool     `json:"placed"`
	Cells  []string `json:"cells,omitempty"`
	Hits   int      `json:"hits"`
	Sunk   bool     `json:"sunk"`
}

// FleetView response type
type FleetView struct {
	Participant string       `json:"participant"`
	Grid        [][]string   `json:"grid"`
	Ships       []ShipStatus `json:"ships"`
}

// TargetView response type
type TargetView struct {
	Participant string     `json:"participant"`
	Grid        [][]string `json:"grid"`
	ShipsAfloat int        `json:"ships_afloat"`
	ShipsSunk   []Ship     `json:"ships_sunk"`
}

// PlaceResult response type
type PlaceResult struct {
	Match Match     `json:"match"`
	Fleet FleetView `json:"fleet"`
}

// ParticipantScore response type
type ParticipantScore struct {
	Name        string  `json:"name"`
	ShotsFired  int     `json:"shots_fired"`
	Hits        int     `json:"hits"`
	Misses      int     `json:"misses"`
	Accuracy    float64 `json:"accuracy"`
	ShipsLost   int     `json:"ships_lost"`
	ShipsAfloat int     `json:"ships_afloat"`
}

// MatchSummary response type
type MatchSummary struct {
	MatchID      string             `json:"match_id"`
	Mode         string             `json:"mode"`
	Status       string             `json:"status"`
	Winner       string             `json:"winner,omitempty"`
	TotalShots   int                `json:"total_shots"`
	Participants []ParticipantScore `json:"participants"`
	StartedAt    time.Time          `json:"started_at"`
	CompletedAt  time.Time          `json:"completed_at"`
}

// HistoryList response type
type HistoryList struct {
	Matches []MatchSummary `json:"matches"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("Mode: %s\n", m.Mode)
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Printf("Host: %s\n", m.HostID)
	if m.OpponentID != "" {
		fmt.Printf("Opponent: %s\n", m.OpponentID)
	}
	if m.Turn != "" {
		fmt.Printf("Turn: %s\n", m.Turn)
	}
	if m.Winner != "" {
		fmt.Printf("Winner: %s\n", m.Winner)
	}
}

func (o *Output) printMatchList(l MatchList) {
	if len(l.Matches) == 0 {
		fmt.Println("No open matches")
		return
	}

	fmt.Printf("Open matches (%d):\n", len(l.Matches))
	for _, m := range l.Matches {
		fmt.Printf("  - %s [%s] host=%s created=%s\n",
			m.ID, m.Mode, m.HostID, m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func (o *Output) printShot(s Shot) {
	outcome := "miss"
	if s.Hit {
		outcome = "hit"
	}
	fmt.Printf("%s fired at %s: %s\n", s.Target, s.Coord, outcome)
	if s.Sunk != nil {
		fmt.Printf("Sunk %s!\n", s.Sunk.Name)
	}
	fmt.Printf("Ships afloat: %d\n", s.AfloatCount)
}

func (o *Output) printFireResult(f FireResult) {
	o.printShot(f.Shot)

	for _, reply := range f.Replies {
		fmt.Println()
		fmt.Println("Return fire:")
		o.printShot(reply)
	}

	fmt.Println()
	if f.Match.Status == "complete" {
		fmt.Printf("Match complete! Winner: %s\n", f.Match.Winner)
	} else if f.Match.Turn != "" {
		fmt.Printf("Next turn: %s\n", f.Match.Turn)
	}
}

func (o *Output) printPlaceResult(p PlaceResult) {
	fmt.Println("Your fleet:")
	o.printFleetGrid(p.Fleet)

	var waiting []string
	for _, s := range p.Fleet.Ships {
		if !s.Placed {
			waiting = append(waiting, fmt.Sprintf("%s (%d)", s.Name, s.Size))
		}
	}
	if len(waiting) > 0 {
		fmt.Printf("Still to place: %s\n", strings.Join(waiting, ", "))
	} else {
		fmt.Println("Fleet complete")
	}
	fmt.Printf("Match status: %s\n", p.Match.Status)
}

func (o *Output) printFleetView(v FleetView) {
	fmt.Printf("Fleet board (%s):\n", v.Participant)
	o.printFleetGrid(v)

	fmt.Println("Ships:")
	for _, s := range v.Ships {
		state := "not placed"
		switch {
		case s.Sunk:
			state = "sunk"
		case s.Placed:
			state = fmt.Sprintf("%d/%d hits", s.Hits, s.Size)
		}
		fmt.Printf("  - %s (%d): %s\n", s.Name, s.Size, state)
	}
}

func (o *Output) printTargetView(v TargetView) {
	fmt.Printf("Target board (%s):\n", v.Participant)
	printGrid(v.Grid, targetCellSymbol)

	fmt.Printf("Ships afloat: %d\n", v.ShipsAfloat)
	if len(v.ShipsSunk) > 0 {
		names := make([]string, len(v.ShipsSunk))
		for i, s := range v.ShipsSunk {
			names[i] = s.Name
		}
		fmt.Printf("Sunk: %s\n", strings.Join(names, ", "))
	}
}

func (o *Output) printHistoryList(h HistoryList) {
	if len(h.Matches) == 0 {
		fmt.Println("No recorded matches")
		return
	}

	fmt.Printf("Recent matches (%d):\n", len(h.Matches))
	for _, m := range h.Matches {
		fmt.Printf("  - %s [%s] %s", m.MatchID, m.Mode, m.Status)
		if m.Winner != "" {
			fmt.Printf(" winner=%s", m.Winner)
		}
		fmt.Printf(" shots=%d completed=%s\n", m.TotalShots, m.CompletedAt.Format("2006-01-02 15:04:05"))
		for _, p := range m.Participants {
			fmt.Printf("      %s: %d/%d hits (%.0f%%), %d ships lost\n",
				p.Name, p.Hits, p.ShotsFired, p.Accuracy*100, p.ShipsLost)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

// printFleetGrid renders the owner's board, overlaying each placed ship's
// initial on its cells so the fleet reads at a glance
func (o *Output) printFleetGrid(v FleetView) {
	symbols := make([][]string, len(v.Grid))
	for r, row := range v.Grid {
		symbols[r] = make([]string, len(row))
		for c, cell := range row {
			symbols[r][c] = fleetCellSymbol(cell)
		}
	}

	for _, s := range v.Ships {
		if !s.Placed || s.Name == "" {
			continue
		}
		initial := strings.ToUpper(s.Name[:1])
		for _, coord := range s.Cells {
			r, c, ok := coordIndexes(coord)
			if ok && r < len(symbols) && c < len(symbols[r]) && symbols[r][c] == "s" {
				symbols[r][c] = initial
			}
		}
	}

	printSymbols(symbols)
}

func printGrid(grid [][]string, symbol func(string) string) {
	symbols := make([][]string, len(grid))
	for r, row := range grid {
		symbols[r] = make([]string, len(row))
		for c, cell := range row {
			symbols[r][c] = symbol(cell)
		}
	}
	printSymbols(symbols)
}

func printSymbols(symbols [][]string) {
	if len(symbols) == 0 {
		return
	}
	size := len(symbols)

	// Print column headers
	fmt.Print("    ")
	for col := 1; col <= size; col++ {
		fmt.Printf("%2d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf(" %c |", rune('A'+row))
		for col := 0; col < len(symbols[row]); col++ {
			fmt.Printf(" %s ", symbols[row][col])
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func targetCellSymbol(cell string) string {
	switch cell {
	case "miss":
		return "o"
	case "hit":
		return "x"
	default:
		return "."
	}
}

func fleetCellSymbol(cell string) string {
	switch cell {
	case "ship":
		return "s"
	case "miss":
		return "o"
	case "hit":
		return "x"
	default:
		return "."
	}
}

// coordIndexes converts a text coordinate like "B7" to zero-based grid
// indexes
func coordIndexes(coord string) (row, col int, ok bool) {
	if len(coord) < 2 {
		return 0, 0, false
	}
	r := coord[0]
	if r < 'A' || r > 'Z' {
		return 0, 0, false
	}
	c, err := strconv.Atoi(coord[1:])
	if err != nil || c < 1 {
		return 0, 0, false
	}
	return int(r - 'A'), c - 1, true
}
