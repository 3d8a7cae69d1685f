package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/vendorstack/agendaq/internal/agenda"
	"github.com/vendorstack/agendaq/internal/models"
	"github.com/vendorstack/agendaq/internal/queue"
)

const writeTimeout = 10 * time.Second

// queueStore is the slice of the db client the queue screen persists through.
type queueStore interface {
	QueryEscalate(ctx context.Context, entityType models.EntityType, id string, newPriority *models.Priority) error
	QuerySetPriority(ctx context.Context, entityType models.EntityType, id string, priority models.Priority) error
	QueryResolve(ctx context.Context, entityType models.EntityType, id string) error
	QueryDeleteItem(ctx context.Context, entityType models.EntityType, id string) (int, error)
	QueryCreateTopic(ctx context.Context, vendorID, title string, topicContext, ask *string) (*models.DiscussionTopic, error)
	QueryUpdateFields(ctx context.Context, entityType models.EntityType, id string, cols map[string]any) error
}

// Theme holds the color scheme for the queue screen.
type Theme struct {
	Header   lipgloss.Color
	Selected lipgloss.Color
	Critical lipgloss.Color
	High     lipgloss.Color
	Medium   lipgloss.Color
	Low      lipgloss.Color
	Hint     lipgloss.Color
	Warn     lipgloss.Color
}

var defaultTheme = Theme{
	Header:   lipgloss.Color("#5FAFD7"), // light blue
	Selected: lipgloss.Color("#00D787"), // green
	Critical: lipgloss.Color("#FF005F"), // red
	High:     lipgloss.Color("#FF8700"), // orange
	Medium:   lipgloss.Color("#FFD700"), // yellow
	Low:      lipgloss.Color("#6C6C6C"), // dim gray
	Hint:     lipgloss.Color("#6C6C6C"),
	Warn:     lipgloss.Color("#FF8700"),
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Header).Bold(true)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Selected).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) warnStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warn)
}

func (t Theme) priorityStyle(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityCritical:
		return lipgloss.NewStyle().Foreground(t.Critical).Bold(true)
	case models.PriorityHigh:
		return lipgloss.NewStyle().Foreground(t.High)
	case models.PriorityLow:
		return lipgloss.NewStyle().Foreground(t.Low)
	default:
		return lipgloss.NewStyle().Foreground(t.Medium)
	}
}

// refreshMsg carries a fresh full fetch from the store.
type refreshMsg struct {
	items []models.RankedItem
	err   error
}

// writeDoneMsg reports a completed background write. Failures are logged and
// never shown; the local order stands until the next refresh.
type writeDoneMsg struct {
	op  string
	key queue.ItemKey
	err error
}

// topicCreatedMsg reports the result of an interactive topic creation.
type topicCreatedMsg struct {
	err error
}

type uiMode int

const (
	modeList uiMode = iota
	modeAdd
	modeEdit
)

// addFields and editFields define form order. Edit exposes every logical
// field; add creates topics, which take title, context, and ask.
var (
	addFields  = []string{"title", "context", "ask"}
	editFields = []string{"title", "context", "ask", "priority", "owner"}
)

// queueModel drives the interactive escalation queue. All ordering decisions
// happen synchronously inside Update; store writes run as commands and are
// never waited on.
type queueModel struct {
	store     queueStore
	assembler *agenda.Assembler
	logger    *slog.Logger

	vendorID string
	limit    int

	q      *queue.Queue
	cursor int

	mode          uiMode
	inputs        []textinput.Model
	fieldNames    []string
	focus         int
	editKey       queue.ItemKey
	pendingDelete *queue.ItemKey

	status string
	theme  Theme
}

func newQueueModel(store queueStore, assembler *agenda.Assembler, vendorID string, limit int, items []models.RankedItem, logger *slog.Logger) queueModel {
	if limit <= 0 {
		limit = agenda.DefaultLimit
	}
	return queueModel{
		store:     store,
		assembler: assembler,
		logger:    logger,
		vendorID:  vendorID,
		limit:     limit,
		q:         queue.New(items),
		theme:     defaultTheme,
	}
}

func (m queueModel) Init() tea.Cmd {
	return nil
}

func (m queueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.mode != modeList {
			return m.updateForm(msg)
		}
		return m.updateList(msg)

	case refreshMsg:
		if msg.err != nil {
			m.logger.Warn("refresh failed", "vendor", m.vendorID, "error", msg.err)
			m.status = "refresh failed, showing last known order"
			return m, nil
		}
		m.q.Replace(msg.items)
		m.clampCursor()
		m.status = fmt.Sprintf("refreshed, %d items", m.q.Len())
		return m, nil

	case writeDoneMsg:
		if msg.err != nil {
			m.logger.Warn("background write failed",
				"op", msg.op,
				"entity", msg.key.Type,
				"id", msg.key.ID,
				"error", msg.err)
		}
		return m, nil

	case topicCreatedMsg:
		if msg.err != nil {
			m.logger.Warn("create topic failed", "vendor", m.vendorID, "error", msg.err)
			m.status = "failed to add topic"
			return m, nil
		}
		// A new item enters through a full re-rank, never a local insert.
		m.status = "topic added"
		return m, m.refresh()
	}

	return m, nil
}

func (m queueModel) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Delete needs a second press on the same item.
	if m.pendingDelete != nil && key != "d" {
		m.pendingDelete = nil
		m.status = ""
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < m.q.Len()-1 {
			m.cursor++
		}

	case "K", "+":
		item, ok := m.q.Item(m.cursor)
		if !ok {
			break
		}
		write, moved := m.q.Escalate(queue.KeyOf(item))
		if moved {
			m.cursor-- // stay on the escalated item
			m.status = fmt.Sprintf("escalated %q", item.Title)
			return m, m.persist(write)
		}
		m.status = "already at the top"

	case "J", "-":
		item, ok := m.q.Item(m.cursor)
		if !ok {
			break
		}
		write, moved := m.q.Deescalate(queue.KeyOf(item))
		if moved {
			m.cursor++
			m.status = fmt.Sprintf("de-escalated %q", item.Title)
			if write != nil {
				return m, m.persist(write)
			}
		} else {
			m.status = "already at the bottom"
		}

	case "r":
		item, ok := m.q.Item(m.cursor)
		if !ok {
			break
		}
		write := m.q.Resolve(queue.KeyOf(item))
		m.clampCursor()
		if write != nil {
			m.status = fmt.Sprintf("resolved %q", item.Title)
			return m, m.persist(write)
		}

	case "d":
		item, ok := m.q.Item(m.cursor)
		if !ok {
			break
		}
		k := queue.KeyOf(item)
		if m.pendingDelete == nil || *m.pendingDelete != k {
			m.pendingDelete = &k
			m.status = fmt.Sprintf("press d again to permanently delete %q", item.Title)
			break
		}
		m.pendingDelete = nil
		write := m.q.Delete(k)
		m.clampCursor()
		if write != nil {
			m.status = fmt.Sprintf("deleted %q", item.Title)
			return m, m.persist(write)
		}

	case "a":
		m.openForm(modeAdd, addFields, nil)

	case "e":
		item, ok := m.q.Item(m.cursor)
		if !ok {
			break
		}
		m.editKey = queue.KeyOf(item)
		m.openForm(modeEdit, editFields, &item)

	case "x":
		path := fmt.Sprintf("agenda-%s-%s.csv", m.vendorID, time.Now().Format("20060102-150405"))
		if err := os.WriteFile(path, []byte(m.q.ExportSnapshot()), 0o644); err != nil {
			m.logger.Warn("export failed", "path", path, "error", err)
			m.status = "export failed"
		} else {
			m.status = fmt.Sprintf("exported %d items to %s", m.q.Len(), path)
		}

	case "g":
		m.status = "refreshing..."
		return m, m.refresh()
	}

	return m, nil
}

func (m *queueModel) openForm(mode uiMode, fields []string, item *models.RankedItem) {
	m.mode = mode
	m.fieldNames = fields
	m.focus = 0
	m.inputs = make([]textinput.Model, len(fields))

	for i, name := range fields {
		ti := textinput.New()
		ti.Placeholder = name
		if item != nil {
			ti.SetValue(fieldValue(*item, name))
		}
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
}

func fieldValue(item models.RankedItem, field string) string {
	switch field {
	case "title":
		return item.Title
	case "context":
		return deref(item.Context)
	case "ask":
		return deref(item.Ask)
	case "priority":
		return string(item.Priority)
	case "owner":
		return deref(item.OwnerID)
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (m queueModel) updateForm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = modeList
		m.status = ""
		return m, nil

	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m.submitForm()

	case "tab", "down":
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *queueModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m queueModel) submitForm() (tea.Model, tea.Cmd) {
	values := make(map[string]string, len(m.inputs))
	for i, name := range m.fieldNames {
		values[name] = strings.TrimSpace(m.inputs[i].Value())
	}

	switch m.mode {
	case modeAdd:
		if values["title"] == "" {
			m.status = "title is required"
			return m, nil
		}
		m.mode = modeList
		m.status = "adding topic..."
		return m, m.createTopic(values["title"], values["context"], values["ask"])

	case modeEdit:
		item, ok := m.q.Item(m.indexOfKey(m.editKey))
		fields := make(map[string]string)
		for name, value := range values {
			if name == "title" && value == "" {
				continue
			}
			if ok && value == fieldValue(item, name) {
				continue
			}
			fields[name] = value
		}

		m.mode = modeList
		write := m.q.Edit(m.editKey, fields)
		if write == nil {
			m.status = "no changes"
			return m, nil
		}
		m.status = "updated"
		return m, m.persist(write)
	}

	m.mode = modeList
	return m, nil
}

func (m queueModel) indexOfKey(key queue.ItemKey) int {
	for i, item := range m.q.Items() {
		if queue.KeyOf(item) == key {
			return i
		}
	}
	return -1
}

func (m *queueModel) clampCursor() {
	if m.cursor >= m.q.Len() {
		m.cursor = m.q.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// refresh re-fetches and re-ranks the full agenda.
func (m queueModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		items, err := m.assembler.Rank(ctx, m.vendorID, m.limit)
		return refreshMsg{items: items, err: err}
	}
}

// persist turns a write descriptor into a fire-and-forget store command.
func (m queueModel) persist(w *queue.Write) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		var (
			op  string
			err error
		)
		switch w.Kind {
		case queue.WriteEscalate:
			op = "escalate"
			var p *models.Priority
			if w.PriorityChanged {
				p = &w.Priority
			}
			err = store.QueryEscalate(ctx, w.Key.Type, w.Key.ID, p)

		case queue.WritePriority:
			op = "set_priority"
			err = store.QuerySetPriority(ctx, w.Key.Type, w.Key.ID, w.Priority)

		case queue.WriteResolve:
			op = "resolve"
			err = store.QueryResolve(ctx, w.Key.Type, w.Key.ID)

		case queue.WriteDelete:
			op = "delete"
			_, err = store.QueryDeleteItem(ctx, w.Key.Type, w.Key.ID)

		case queue.WriteEdit:
			op = "edit"
			cols := make(map[string]any, len(w.Fields))
			for field, value := range w.Fields {
				col, ok := models.FieldColumn(w.Key.Type, field)
				if !ok {
					continue
				}
				if field == "priority" {
					cols[col] = string(models.ParsePriority(value))
				} else {
					cols[col] = value
				}
			}
			err = store.QueryUpdateFields(ctx, w.Key.Type, w.Key.ID, cols)
		}

		return writeDoneMsg{op: op, key: w.Key, err: err}
	}
}

// createTopic inserts a new discussion topic for this vendor.
func (m queueModel) createTopic(title, topicContext, ask string) tea.Cmd {
	store := m.store
	vendorID := m.vendorID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		var ctxPtr, askPtr *string
		if topicContext != "" {
			ctxPtr = &topicContext
		}
		if ask != "" {
			askPtr = &ask
		}

		_, err := store.QueryCreateTopic(ctx, vendorID, title, ctxPtr, askPtr)
		return topicCreatedMsg{err: err}
	}
}

func (m queueModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m queueModel) renderContent() string {
	var b strings.Builder

	b.WriteString(m.theme.headerStyle().Render(fmt.Sprintf("Agenda queue · %s", m.vendorID)))
	b.WriteString("\n\n")

	if m.mode != modeList {
		b.WriteString(m.renderForm())
		return b.String()
	}

	if m.q.Len() == 0 {
		b.WriteString(m.theme.hintStyle().Render("No open items. Press a to add a topic, q to quit."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.q.Items() {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.selectedStyle().Render("> ")
		}

		severity := "-"
		if item.Severity != "" {
			severity = strings.ToUpper(string(item.Severity))
		}

		priority := m.theme.priorityStyle(item.Priority).Render(fmt.Sprintf("%-8s", item.Priority))
		line := fmt.Sprintf("%s%2d %6.1f  %s %-8s %-16s %s",
			marker, item.Rank, item.Score, priority, severity, item.EntityType, item.Title)
		if i == m.cursor {
			line = m.theme.selectedStyle().Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.warnStyle().Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.hintStyle().Render(
		"K/+ escalate  J/- de-escalate  r resolve  d d delete  a add  e edit  x export  g refresh  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m queueModel) renderForm() string {
	var b strings.Builder

	title := "Add discussion topic"
	if m.mode == modeEdit {
		title = "Edit item"
	}
	b.WriteString(m.theme.headerStyle().Render(title))
	b.WriteString("\n\n")

	for i, name := range m.fieldNames {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", name, m.inputs[i].View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.warnStyle().Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.hintStyle().Render("enter next/submit  tab cycle  esc cancel"))
	b.WriteString("\n")

	return b.String()
}
