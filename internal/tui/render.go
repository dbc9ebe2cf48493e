package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/denisecase/rockfit/internal/game"
	"github.com/denisecase/rockfit/internal/protocol"
)

var (
	// Indexed by cell id: 0 empty, 1..7 the piece palette.
	colors = []string{
		"0",
		"51",  // I cyan
		"21",  // J blue
		"208", // L orange
		"226", // O yellow
		"46",  // S green
		"201", // T magenta
		"196", // Z red
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	comboStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func cellColor(c game.Cell) string {
	if int(c) < len(colors) {
		return colors[c]
	}
	return "248"
}

// ghostRow returns the lowest legal row for the active piece, for the
// landing preview.
func ghostRow(snap *game.Snapshot) int {
	a := snap.Active
	row := a.Row
	for !snap.Grid.Collides(a.Shape, row+1, a.Col) {
		row++
	}
	return row
}

// RenderBoard draws the playfield with the active piece and its ghost
// overlaid. Rows above the visible top are simply not drawn.
func RenderBoard(snap *game.Snapshot) string {
	var sb strings.Builder

	a := snap.Active
	ghost := -1
	if a != nil {
		ghost = ghostRow(snap)
	}

	for y := 0; y < snap.Grid.Height(); y++ {
		for x := 0; x < snap.Grid.Width(); x++ {
			char := "  "
			color := "0"

			if cell := snap.Grid.At(y, x); cell != 0 {
				char = "██"
				color = cellColor(cell)
			}

			if a != nil {
				if pr, pc := y-ghost, x-a.Col; char == "  " &&
					pr >= 0 && pr < a.Shape.Rows() && pc >= 0 && pc < a.Shape.Cols() &&
					a.Shape.At(pr, pc) != 0 {
					char = "[]"
					color = "244"
				}
				if pr, pc := y-a.Row, x-a.Col; pr >= 0 && pr < a.Shape.Rows() &&
					pc >= 0 && pc < a.Shape.Cols() && a.Shape.At(pr, pc) != 0 {
					char = "██"
					color = cellColor(a.ID.Cell())
				}
			}

			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(color)).
				Render(char))
		}
		if y < snap.Grid.Height()-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

// RenderPiecePreview draws a piece's base rotation, for the NEXT box.
func RenderPiecePreview(id game.PieceID) string {
	shape := game.RotationsFor(id)[0]
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(cellColor(id.Cell())))

	var sb strings.Builder
	for r := 0; r < shape.Rows(); r++ {
		for c := 0; c < shape.Cols(); c++ {
			if shape.At(r, c) != 0 {
				sb.WriteString(style.Render("██"))
			} else {
				sb.WriteString("  ")
			}
		}
		if r < shape.Rows()-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderHUD draws the side panel: identity, counters, and the next
// piece preview.
func RenderHUD(snap *game.Snapshot, playerName string) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("ROCKFIT") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", playerName)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", snap.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", snap.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", snap.Lines)) + "\n")
	if snap.Combo > 1 {
		sb.WriteString(comboStyle.Render(fmt.Sprintf(" COMBO x%d", snap.Combo)) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	sb.WriteString(RenderPiecePreview(snap.NextKey) + "\n")

	if snap.Paused {
		sb.WriteString("\n" + pausedStyle.Render("PAUSED"))
	}

	return sb.String()
}

// RenderScoreboard formats leaderboard rows received from the server.
func RenderScoreboard(rows []protocol.ScoreRow) string {
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("TOP SCORES") + "\n")
	for i, row := range rows {
		sb.WriteString(infoStyle.Render(
			fmt.Sprintf("%2d. %-12s %6d  L%d", i+1, row.Player, row.Score, row.Level)) + "\n")
	}
	return sb.String()
}

func RenderWelcome() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(`
╔══════════════════════════════╗
║        R O C K F I T         ║
║   Falling-block puzzler      ║
╚══════════════════════════════╝

   [1] Play (7-bag randomizer)
   [2] Play (pure random)

   Press 1 or 2 to start
   Press Q to quit
`)
}

func RenderGameOver(score, level, lines int, scoreboard string) string {
	content := gameOverStyle.Render(
		fmt.Sprintf("\n\n     GAME OVER     \n     Score: %d  Level: %d  Lines: %d     \n\n", score, level, lines))
	if scoreboard != "" {
		content += "\n" + scoreboard
	}
	content += "\nPress R to play again, ENTER for menu"
	return content
}

func RenderControls() string {
	return infoStyle.Render(`
Controls:
  ← →    Move left/right
  ↓      Soft drop
  Space  Hard drop
  ↑/X    Rotate
  P      Pause
  R      Restart
`)
}
