// Package tui renders the server's per-viewer state projection in the
// terminal. It is a pure view/input surface: every rule decision stays on
// the server, and illegal inputs just come back as errorMessage lines.
package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/client"
	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/server"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boardStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	turnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	insightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// serverMsg wraps an inbound server message for the bubbletea loop.
type serverMsg struct {
	msg *server.Message
}

// disconnectedMsg signals the server connection dropped.
type disconnectedMsg struct{}

// Model is the bubbletea model for the table client.
type Model struct {
	client *client.Client
	logger *log.Logger

	state     game.State
	lastError string

	raising  bool
	raiseTo  textinput.Model
	quitting bool
}

// NewModel creates the TUI model around a connected client.
func NewModel(c *client.Client, logger *log.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "raise to"
	input.CharLimit = 9
	input.Width = 12
	return &Model{
		client:  c,
		logger:  logger.WithPrefix("tui"),
		raiseTo: input,
	}
}

func (m *Model) waitForServer() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.client.Incoming
		if !ok {
			return disconnectedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

// Init starts the server message pump.
func (m *Model) Init() tea.Cmd {
	return m.waitForServer()
}

// Update handles key presses and server messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case serverMsg:
		m.applyServer(msg.msg)
		return m, m.waitForServer()

	case disconnectedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyServer(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeState:
		var state game.State
		if err := json.Unmarshal(msg.Data, &state); err != nil {
			m.logger.Error("bad state payload", "error", err)
			return
		}
		m.state = state
	case server.MessageTypeErrorMessage:
		var data server.ErrorMessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		m.lastError = data.Message
	}
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.raising {
		switch key.String() {
		case "enter":
			amount, err := strconv.Atoi(strings.TrimSpace(m.raiseTo.Value()))
			m.raising = false
			m.raiseTo.Blur()
			if err != nil {
				m.lastError = "Raise amount must be a number"
				return m, nil
			}
			_ = m.client.Act(game.ActionRaise, amount)
			return m, nil
		case "esc":
			m.raising = false
			m.raiseTo.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.raiseTo, cmd = m.raiseTo.Update(key)
			return m, cmd
		}
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "s":
		_ = m.client.StartGame()
	case "f":
		_ = m.client.Act(game.ActionFold, 0)
	case "c":
		if m.state.AvailableActions.CanCall {
			_ = m.client.Act(game.ActionCall, 0)
		} else {
			_ = m.client.Act(game.ActionCheck, 0)
		}
	case "r":
		if m.state.CanAct && m.state.AvailableActions.CanRaise {
			m.raising = true
			m.raiseTo.SetValue(strconv.Itoa(m.state.AvailableActions.MinRaiseTo))
			m.raiseTo.Focus()
		}
	}
	return m, nil
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return "disconnected\n"
	}

	var b strings.Builder
	s := m.state

	b.WriteString(titleStyle.Render(fmt.Sprintf("Hold'em  blinds %d/%d  hand #%d  phase %s", s.SmallBlind, s.BigBlind, s.HandNumber, s.Phase)))
	b.WriteString("\n\n")

	b.WriteString(boardStyle.Render("Board: " + cardLine(s.CommunityCards)))
	b.WriteString(fmt.Sprintf("   Pot: %d   To match: %d\n\n", s.Pot, s.CurrentBet))

	for _, p := range s.Players {
		marker := "  "
		if p.ID == s.CurrentTurnID {
			marker = "> "
		}
		tags := []string{}
		if p.ID == s.DealerID {
			tags = append(tags, "D")
		}
		if p.IsAdmin {
			tags = append(tags, "admin")
		}
		if p.Folded {
			tags = append(tags, "folded")
		}
		if p.AllIn {
			tags = append(tags, "all-in")
		}
		line := fmt.Sprintf("%s%-20s %6d chips  bet %d", marker, p.Name, p.Chips, p.BetThisRound)
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, " ") + "]"
		}
		if p.ID == s.CurrentTurnID {
			line = turnStyle.Render(line)
		} else if p.Folded {
			line = dimStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\nYour cards: " + cardLine(s.YourCards) + "\n")
	if s.HandInsight != nil {
		hint := fmt.Sprintf("%s - %s (%d)", s.HandInsight.CurrentHand, s.HandInsight.StrengthLabel, s.HandInsight.StrengthScore)
		if len(s.HandInsight.Draws) > 0 {
			hint += "  draws: " + strings.Join(s.HandInsight.Draws, ", ")
		}
		b.WriteString(insightStyle.Render(hint) + "\n")
	}

	if m.raising {
		b.WriteString("\nRaise to: " + m.raiseTo.View() + "  (enter to submit, esc to cancel)\n")
	} else if s.CanAct {
		aa := s.AvailableActions
		opts := []string{"[f]old"}
		if aa.CanCheck {
			opts = append(opts, "[c]heck")
		}
		if aa.CanCall {
			opts = append(opts, fmt.Sprintf("[c]all %d", aa.CallAmount))
		}
		if aa.CanRaise {
			opts = append(opts, fmt.Sprintf("[r]aise (%d-%d)", aa.MinRaiseTo, aa.MaxRaiseTo))
		}
		b.WriteString("\n" + turnStyle.Render("Your turn: "+strings.Join(opts, "  ")) + "\n")
	} else if !s.GameStarted {
		b.WriteString(dimStyle.Render("\nWaiting in the lobby. Admin presses [s] to start.\n"))
	}

	if m.lastError != "" {
		b.WriteString("\n" + errStyle.Render(m.lastError) + "\n")
	}

	tail := s.Logs
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	b.WriteString("\n" + dimStyle.Render("--- log ---") + "\n")
	for _, entry := range tail {
		b.WriteString(dimStyle.Render(entry.Time+" "+entry.Message) + "\n")
	}

	b.WriteString(dimStyle.Render("\n[q] quit\n"))
	return b.String()
}

func cardLine(cards []deck.Card) string {
	if len(cards) == 0 {
		return "--"
	}
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.String()
	}
	return strings.Join(codes, " ")
}
