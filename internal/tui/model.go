// Package tui renders the live countdown view of the watch command.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/calvinalkan/deliverables/internal/deliverable"
	"github.com/calvinalkan/deliverables/internal/progress"
	"github.com/calvinalkan/deliverables/internal/store"
)

// TickInterval is how often the view recomputes progress.
const TickInterval = time.Second

// Options configures a [Model].
type Options struct {
	Policy progress.Policy
	// Now defaults to time.Now.
	Now func() time.Time
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Done   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Done:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type tickMsg time.Time

// snapshot is shared by every copy of the model. The store subscription
// refreshes it after each change.
type snapshot struct {
	items   []deliverable.Deliverable
	changes int
}

// Model is the Bubble Tea model of the watch view.
type Model struct {
	store       *store.Store
	policy      progress.Policy
	now         func() time.Time
	snap        *snapshot
	unsubscribe func()

	at     time.Time
	cursor int
	width  int
	status string
}

// New returns a model showing st. Call [Model.Close] when done to drop the
// store subscription.
func New(st *store.Store, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	snap := &snapshot{items: st.Sorted()}
	unsubscribe := st.Subscribe(func() {
		snap.items = st.Sorted()
		snap.changes++
	})

	return Model{
		store:       st,
		policy:      opts.Policy,
		now:         now,
		snap:        snap,
		unsubscribe: unsubscribe,
		at:          now(),
	}
}

// Close removes the store subscription. Safe to call more than once.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Changes returns how many store change notifications the view has seen.
func (m Model) Changes() int {
	return m.snap.changes
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles ticks, resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.at = m.now()

		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.Close()

			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.cursor--
		case key.Matches(msg, keys.Down):
			m.cursor++
		case key.Matches(msg, keys.Done):
			if d, ok := m.selected(); ok {
				m.store.Complete(d)
				m.status = "Completed " + d.Title
			}
		case key.Matches(msg, keys.Reload):
			m.store.Reload()
			m.status = fmt.Sprintf("Reloaded %d deliverables", len(m.snap.items))
		}
	}

	m.cursor = max(0, min(m.cursor, len(m.snap.items)-1))

	return m, nil
}

func (m Model) selected() (deliverable.Deliverable, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.items) {
		return deliverable.Deliverable{}, false
	}

	return m.snap.items[m.cursor], true
}

// View renders the list with one progress bar per deliverable.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deliverables"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d  •  %s  •  %s", len(m.snap.items), m.policy, m.at.Format("15:04:05"))))
	b.WriteString("\n\n")

	if len(m.snap.items) == 0 {
		b.WriteString(mutedStyle.Render("Nothing due. Add one with: deliverables add <title>"))
		b.WriteString("\n")
	}

	width := barWidth(m.width)

	for i, d := range m.snap.items {
		b.WriteString(m.renderItem(i, d, width))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpLine()))

	return frameStyle.Render(b.String())
}

func (m Model) renderItem(i int, d deliverable.Deliverable, width int) string {
	overdue := d.IsOverdue(m.at)
	fraction := d.Progress(m.policy, m.at)

	prefix := "  "
	title := strings.ReplaceAll(d.Title, "\n", " ")

	if i == m.cursor {
		prefix = selectedStyle.Render("> ")
		title = selectedStyle.Render(title)
	}

	label := fmt.Sprintf("%3d%%", int(fraction*100+0.5))
	remaining := deliverable.Remaining(d.DueAt, m.at)

	if overdue {
		label = overdueStyle.Render("OVERDUE")
		remaining = overdueStyle.Render(remaining)
	}

	return fmt.Sprintf("%s%s\n  %s %s  %s  %s\n",
		prefix, title,
		bar(fraction, width, overdue), label,
		mutedStyle.Render(deliverable.FormatDue(d.DueAt, m.at)), remaining,
	)
}

func helpLine() string {
	bindings := []key.Binding{keys.Up, keys.Down, keys.Done, keys.Reload, keys.Quit}
	parts := make([]string, 0, len(bindings))

	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	return strings.Join(parts, " • ")
}
