package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

const minWidth = 60
const minHeight = 16

const aboutText = `# Great Corp Simulator

You are a new hire at Great Corp. Every day you get one unit of time and a
queue of work. Keep the boss happy without burning out.

## How a day works

- The clock runs down on its own. Each step costs **approval** and gives a
  little **morale** back.
- Doing a task spends its time, raises approval and costs morale.
- Slacking off buys a moment of morale at the price of approval.
- Tasks marked with a deadline cost you **10 approval** if you let them slip.

## How a run ends

At the end of each day the boss checks in. Approval under the bar gets you
shown the door; morale under the bar means you burn out. You can also walk
away whenever you like.

## Skill cards

High-tier work sometimes earns a card:

| Card | Effect |
|---|---|
| Reset Approval | Approval back to 80 |
| Reset Morale | Morale back to 80 |
| Suppress | No low-tier busywork for three days |
`

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		modal := m.renderHelpModal()
		return placeOverlay(modal, w, h)
	}

	if m.showClearConfirm {
		modal := m.renderClearModal()
		return placeOverlay(modal, w, h)
	}

	var b strings.Builder

	// Header
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 2
	footerLines := 2
	contentHeight := h - headerLines - footerLines

	var content string
	switch m.screen {
	case screenGame:
		content = m.renderGame(w, contentHeight)
	case screenResult, screenAbout:
		content = m.doc.View()
	case screenLeaderboard:
		content = m.renderLeaderboard()
	default:
		content = m.renderHome()
	}

	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(content, i, w))
		b.WriteString("\n")
	}

	// Separator
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	// Footer
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Great Corp Simulator")

	var stats string
	switch m.screen {
	case screenGame, screenResult:
		st := m.session.State()
		stats = HeaderCountStyle.Render(fmt.Sprintf("day %d  %d tasks done", st.Day, st.TasksCompleted))
	default:
		if best, ok := m.ledger.Best(); ok {
			stats = HeaderCountStyle.Render(fmt.Sprintf("best: %d days", best.DaysSurvived))
		} else {
			stats = HeaderCountStyle.Render("no runs yet")
		}
	}

	// Status message
	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusStyle.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderHome() string {
	var lines []string
	lines = append(lines, "")
	lines = append(lines, TitleStyle.Render("Welcome to Great Corp."))
	lines = append(lines, "Spend each day's time on work that keeps the boss happy,")
	lines = append(lines, "without wearing yourself down.")
	lines = append(lines, "")
	if best, ok := m.ledger.Best(); ok {
		lines = append(lines, DimStyle.Render(fmt.Sprintf("Longest career so far: %d days (%s)", best.DaysSurvived, best.Title)))
		lines = append(lines, "")
	}
	lines = append(lines, menuLine("n", "Start a new run"))
	lines = append(lines, menuLine("l", "Leaderboard"))
	lines = append(lines, menuLine("a", "About"))
	lines = append(lines, menuLine("q", "Quit"))
	return strings.Join(lines, "\n")
}

func menuLine(k, label string) string {
	return "  " + CardStyle.Render("["+k+"]") + " " + label
}

func (m Model) renderGame(width, height int) string {
	st := m.session.State()
	var lines []string

	// Clock
	clock := MeterLabelStyle.Render("Time left") + m.timeBar.ViewAs(st.TimeLeft) +
		" " + MeterValueStyle.Render(fmt.Sprintf("%.2fd", st.TimeLeft))
	if m.paused {
		clock += "  " + PausedStyle.Render("PAUSED")
	}
	lines = append(lines, clock)

	// Meters
	lines = append(lines, m.renderMeter("Approval", st.Approval, m.cfg.DangerApproval, m.approvalBar.ViewAs(float64(st.Approval)/sim.MeterMax)))
	lines = append(lines, m.renderMeter("Morale", st.Morale, m.cfg.DangerMorale, m.moraleBar.ViewAs(float64(st.Morale)/sim.MeterMax)))

	// Cards and effects
	cards := m.session.SkillCards()
	var cardParts []string
	for i, k := range sim.SkillKinds {
		cardParts = append(cardParts, fmt.Sprintf("%s %s ×%d", CardStyle.Render(fmt.Sprintf("[%d]", i+1)), skillLabel(k), cards[k]))
	}
	lines = append(lines, MeterLabelStyle.Render("Cards")+strings.Join(cardParts, "  "))
	for _, e := range m.session.ActiveEffects() {
		lines = append(lines, MeterLabelStyle.Render("")+EffectStyle.Render(fmt.Sprintf("%s Low-tier work suppressed, %d day(s) left", IconEffect, e.RemainingDays)))
	}
	lines = append(lines, "")

	// Task list
	waiting := len(m.session.Tasks()) - len(m.rows)
	lines = append(lines, TitleStyle.UnsetMarginBottom().Render(fmt.Sprintf("Tasks  %d on offer", len(m.rows)))+
		DimStyle.Render(fmt.Sprintf("  %d more won't fit today", waiting)))

	listHeight := height - len(lines)
	if listHeight < 1 {
		listHeight = 1
	}
	if len(m.rows) == 0 {
		lines = append(lines, DimStyle.Render("Nothing fits in the time left. Let the clock run out."))
		return strings.Join(lines, "\n")
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.rows)
	if len(m.rows) > listHeight {
		half := listHeight / 2
		startIdx = m.cursor - half
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.rows) {
			endIdx = len(m.rows)
			startIdx = endIdx - listHeight
			if startIdx < 0 {
				startIdx = 0
			}
		}
	}

	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderTaskRow(m.rows[i], i == m.cursor, width))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderMeter(label string, value, danger int, bar string) string {
	valueStyle := MeterValueStyle
	if value < danger {
		valueStyle = MeterDangerStyle
	}
	return MeterLabelStyle.Render(label) + bar + " " + valueStyle.Render(fmt.Sprintf("%3d", value))
}

func (m Model) renderTaskRow(row TaskRow, isSelected bool, width int) string {
	prefix := "  "
	if isSelected {
		prefix = IconCursor + " "
	}

	nameWidth := width - 44
	if nameWidth < 12 {
		nameWidth = 12
	}
	name := row.Task.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	morale := GainStyle
	if row.Task.Morale < 0 {
		morale = LossStyle
	}

	line := prefix +
		CategoryStyle(row.Task.Category).Render(fmt.Sprintf("%-*s", nameWidth, name)) + " " +
		DimStyle.Render(fmt.Sprintf("%6s", row.Cost)) + " " +
		GainStyle.Render(fmt.Sprintf("%4s", row.Approval)) + " appr " +
		morale.Render(fmt.Sprintf("%4s", row.Morale)) + " mor"
	if row.Deadline != "" {
		line += "  " + DeadlineStyle.Render(IconDeadline+" "+row.Deadline)
	}

	// Pad to width
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		line += strings.Repeat(" ", width-lineWidth)
	}

	if isSelected {
		line = SelectedStyle.Render(line)
	}
	return line
}

// resultMarkdown describes the finished run.
func (m Model) resultMarkdown() string {
	st := m.session.State()
	r := m.session.Result()

	var md strings.Builder
	md.WriteString("# " + r.Title + "\n\n")
	md.WriteString("*" + r.Subtitle + "*\n\n")
	md.WriteString(r.Description + "\n\n")
	md.WriteString("| | |\n|---|---|\n")
	md.WriteString(fmt.Sprintf("| Days survived | %d |\n", st.Day))
	md.WriteString(fmt.Sprintf("| Tasks completed | %d |\n", st.TasksCompleted))
	md.WriteString(fmt.Sprintf("| Approval | %d |\n", st.Approval))
	md.WriteString(fmt.Sprintf("| Morale | %d |\n", st.Morale))

	return md.String()
}

func (m Model) renderLeaderboard() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Leaderboard"))
	b.WriteString("\n")
	if m.ledger.Len() == 0 {
		b.WriteString(DimStyle.Render("No runs recorded yet."))
		return b.String()
	}
	b.WriteString(m.board.View())
	if m.cfg.DataDir != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(m.cfg.DataDir)))
	}
	return b.String()
}

// renderMarkdown renders md with the cached glamour renderer, falling back to
// the raw text before the first window size arrives.
func (m Model) renderMarkdown(md string) string {
	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}
	return strings.TrimRight(rendered, "\n ")
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp(m.screen)
	if m.screen == screenGame && m.paused {
		help = "p resume  x resign  ? help  q quit"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderClearModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Clear History"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Delete all %d recorded runs?\n\n", m.ledger.Len()))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
