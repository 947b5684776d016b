package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pauliflow/pkg/pipeline"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 32

// progressInterval throttles progress messages sent to the view.
const progressInterval = 50 * time.Millisecond

// =============================================================================
// progressModel - live synthesis progress
// =============================================================================

type progressMsg struct {
	remaining int
	gates     int
}

type doneMsg struct {
	result *pipeline.Result
	err    error
}

// progressModel shows how many operators are still pending while a run
// proceeds. Shuffled re-runs restart the count, which the view reports as a
// new pass.
type progressModel struct {
	total     int
	remaining int
	gates     int
	pass      int
	start     time.Time
	result    *pipeline.Result
	err       error
	cancelled bool
}

func newProgressModel(total int) progressModel {
	return progressModel{total: total, remaining: total, pass: 1, start: time.Now()}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" || msg.String() == "esc" {
			m.cancelled = true
			return m, tea.Quit
		}
	case progressMsg:
		if msg.remaining > m.remaining {
			m.pass++
		}
		m.remaining = msg.remaining
		m.gates = msg.gates
	case doneMsg:
		m.result = msg.result
		m.err = msg.err
		m.remaining = 0
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.result != nil || m.err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Synthesizing"))
	if m.pass > 1 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  pass %d", m.pass)))
	}
	b.WriteString("\n")
	b.WriteString(m.bar())
	fmt.Fprintf(&b, " %s/%s operators",
		StyleNumber.Render(fmt.Sprint(m.total-m.remaining)), StyleValue.Render(fmt.Sprint(m.total)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d gates · %s · q to abort",
		m.gates, time.Since(m.start).Round(100*time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

func (m progressModel) bar() string {
	done := 0
	if m.total > 0 {
		done = (m.total - m.remaining) * barWidth / m.total
	}
	done = min(max(done, 0), barWidth)
	return barFullStyle.Render(strings.Repeat("█", done)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-done))
}

// runWithProgress executes the pipeline while a bubbletea program renders
// its progress on stderr.
func runWithProgress(ctx context.Context, runner *pipeline.Runner, po pipeline.Options) (*pipeline.Result, error) {
	p := tea.NewProgram(newProgressModel(len(po.Operators)), tea.WithOutput(os.Stderr), tea.WithContext(ctx))

	var last time.Time
	po.Progress = func(remaining, gates int) {
		if now := time.Now(); now.Sub(last) >= progressInterval {
			last = now
			p.Send(progressMsg{remaining: remaining, gates: gates})
		}
	}
	go func() {
		res, err := runner.Execute(ctx, po)
		p.Send(doneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}
	m := final.(progressModel)
	if m.cancelled {
		return nil, context.Canceled
	}
	return m.result, m.err
}
