package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/eia"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the interactive tree browser.
func (c *CLI) browseCommand() *cobra.Command {
	opts := &clientOpts{}

	cmd := &cobra.Command{
		Use:   "browse [route]",
		Short: "Browse the route tree interactively",
		Long: `Browse the route tree interactively.

The browser starts at the given route (default the API root) and walks
the tree one node at a time: enter descends into the selected child,
backspace ascends, q quits. Dataset nodes show their facets,
frequencies, and value columns.

Every step issues one API call, so navigation is paced by the call
delay unless responses come from the cache.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), routeArg(args), opts)
		},
	}

	addClientFlags(cmd, opts)
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, route eia.Route, opts *clientOpts) error {
	client, closeClient, err := c.newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient()

	p := tea.NewProgram(newBrowseModel(ctx, client, route))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(browseModel); ok && fm.err != nil {
		return reportError(fm.err)
	}
	return nil
}

// =============================================================================
// browseModel - Interactive tree navigation
// =============================================================================

// nodeMsg delivers the result of a describe call to the model.
type nodeMsg struct {
	node *eia.Node
	err  error
}

// browseModel is the bubbletea model for route tree navigation.
type browseModel struct {
	ctx    context.Context
	client *eia.Client

	route   eia.Route
	node    *eia.Node
	loading bool
	err     error

	cursor int
	offset int
	height int
}

// newBrowseModel creates a browse model rooted at route.
func newBrowseModel(ctx context.Context, client *eia.Client, route eia.Route) browseModel {
	return browseModel{
		ctx:     ctx,
		client:  client,
		route:   route,
		loading: true,
		height:  15,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.describeCmd()
}

// describeCmd fetches the current route's metadata off the UI loop.
func (m browseModel) describeCmd() tea.Cmd {
	ctx, client, route := m.ctx, m.client, m.route
	return func() tea.Msg {
		node, err := client.Describe(ctx, route)
		return nodeMsg{node: node, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nodeMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.node = msg.node
		m.cursor = 0
		m.offset = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.node != nil && m.cursor < len(m.node.Children)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", "right", "l":
			if m.node == nil || m.node.Kind != eia.KindIntermediate || len(m.node.Children) == 0 {
				return m, nil
			}
			m.route = m.route.Child(m.node.Children[m.cursor].ID)
			m.node = nil
			m.loading = true
			return m, m.describeCmd()
		case "backspace", "left", "h":
			if m.route.IsRoot() {
				return m, nil
			}
			m.route = m.route.Parent()
			m.node = nil
			m.loading = true
			return m, m.describeCmd()
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	if m.loading {
		return listDimStyle.Render(fmt.Sprintf("Loading %s...", routeLabel(m.route)))
	}
	if m.node == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render(routeLabel(m.route)))
	if m.node.Name != "" {
		b.WriteString("  ")
		b.WriteString(listDimStyle.Render(m.node.Name))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ descend  ⌫ back  q quit"))
	b.WriteString("\n\n")

	if m.node.Kind == eia.KindLeaf {
		m.viewLeaf(&b)
	} else {
		m.viewChildren(&b)
	}
	return b.String()
}

// viewChildren renders the windowed child list of a folder node.
func (m browseModel) viewChildren(b *strings.Builder) {
	children := m.node.Children
	if len(children) == 0 {
		b.WriteString(listDimStyle.Render("  (no child routes)"))
		b.WriteString("\n")
		return
	}

	end := m.offset + m.height
	if end > len(children) {
		end = len(children)
	}

	for i := m.offset; i < end; i++ {
		child := children[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-28s %s", cursor, child.ID, listDimStyle.Render(truncate(child.Name, 48)))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(children))))
}

// viewLeaf renders a dataset node's descriptors.
func (m browseModel) viewLeaf(b *strings.Builder) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	kv := func(key, value string) {
		b.WriteString(keyStyle.Render(key))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(StyleSuccess.Render("  dataset"))
	b.WriteString("\n\n")
	kv("Facets", joinOrDash(m.node.Facets))
	kv("Frequencies", joinOrDash(m.node.Frequencies))
	kv("Columns", joinOrDash(m.node.Columns))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Fetch with: ") + styleCommand.Render(fmt.Sprintf("eiascout get %s", m.route)))
}
