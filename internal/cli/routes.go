package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/eia"
)

// routesCommand creates the routes command for inspecting one route.
func (c *CLI) routesCommand() *cobra.Command {
	opts := &clientOpts{}

	cmd := &cobra.Command{
		Use:   "routes [route]",
		Short: "Show child routes or dataset details for a route",
		Long: `Show child routes or dataset details for a route.

Without an argument the command describes the API root and lists its
top-level categories. With a route argument (for example
electricity/retail-sales) it describes that route: folders list their
child routes, datasets list their facets, frequencies, and value columns.

Use 'browse' for an interactive version of the same walk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoutes(cmd.Context(), routeArg(args), opts)
		},
	}

	addClientFlags(cmd, opts)
	return cmd
}

// routeArg parses the optional positional route, defaulting to the root.
func routeArg(args []string) eia.Route {
	if len(args) == 0 {
		return eia.Route{}
	}
	return eia.ParseRoute(args[0])
}

// routeLabel renders a route for display; the root shows as "/".
func routeLabel(r eia.Route) string {
	if r.IsRoot() {
		return "/"
	}
	return r.String()
}

func (c *CLI) runRoutes(ctx context.Context, route eia.Route, opts *clientOpts) error {
	client, closeClient, err := c.newClient(ctx, opts)
	if err != nil {
		return err
	}
	defer closeClient()

	spinner := startSpinner(ctx, fmt.Sprintf("Describing %s...", routeLabel(route)))
	node, err := client.Describe(ctx, route)
	spinner.Stop()
	if err != nil {
		return reportError(err)
	}

	if node.Kind == eia.KindIntermediate {
		printFolder(node)
	} else {
		printDataset(node)
	}
	return nil
}

// printFolder lists an intermediate node's children as a table.
func printFolder(node *eia.Node) {
	printHeader(node)

	rows := make([][]string, len(node.Children))
	for i, child := range node.Children {
		rows[i] = []string{
			node.Route.Child(child.ID).String(),
			child.Name,
			truncate(child.Description, 60),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Route", "Name", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return StyleHighlight
			case 2:
				return StyleDim
			default:
				return lipgloss.NewStyle()
			}
		})

	fmt.Println(t.Render())
	printDetail("%d child routes", len(node.Children))
	printNewline()
	printNextStep("Descend", "eiascout routes "+exampleChild(node))
}

// exampleChild picks the first child as a copy-pasteable example path.
func exampleChild(node *eia.Node) string {
	if len(node.Children) == 0 {
		return "<route>"
	}
	return node.Route.Child(node.Children[0].ID).String()
}

// printDataset shows a leaf node's descriptors.
func printDataset(node *eia.Node) {
	printHeader(node)

	printKeyValue("Route", routeLabel(node.Route))
	printKeyValue("Facets", joinOrDash(node.Facets))
	printKeyValue("Frequencies", joinOrDash(node.Frequencies))
	printKeyValue("Columns", joinOrDash(node.Columns))
	printNewline()
	printNextStep("Fetch rows", fmt.Sprintf("eiascout get %s", node.Route))
}

func printHeader(node *eia.Node) {
	name := node.Name
	if name == "" {
		name = routeLabel(node.Route)
	}
	fmt.Println(StyleTitle.Render(name))
	if node.Description != "" {
		fmt.Println(StyleDim.Render(node.Description))
	}
	printNewline()
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	return strings.Join(ids, ", ")
}

// truncate shortens s to at most n bytes, marking the cut with "..".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + ".."
}
