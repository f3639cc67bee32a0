package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openeia/eiascout/pkg/eia"
)

func browseFixture() browseModel {
	return browseModel{
		ctx:   context.Background(),
		route: eia.ParseRoute("electricity"),
		node: &eia.Node{
			Route: eia.ParseRoute("electricity"),
			Kind:  eia.KindIntermediate,
			Name:  "Electricity",
			Children: []eia.Child{
				{ID: "retail-sales", Name: "Retail Sales"},
				{ID: "prices", Name: "Prices"},
				{ID: "generation", Name: "Generation"},
			},
		},
		height: 15,
	}
}

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	got, ok := updated.(browseModel)
	if !ok {
		t.Fatalf("Update() returned %T, want browseModel", updated)
	}
	return got, cmd
}

func TestBrowseCursorMovement(t *testing.T) {
	m := browseFixture()

	m, _ = update(t, m, keyMsg("j"))
	if m.cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.cursor)
	}

	m, _ = update(t, m, keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.cursor)
	}

	m, _ = update(t, m, keyMsg("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should not move above the first entry, got %d", m.cursor)
	}
}

func TestBrowseWindowFollowsCursor(t *testing.T) {
	m := browseFixture()
	m.height = 2

	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}

	m, _ = update(t, m, keyMsg("k"))
	m, _ = update(t, m, keyMsg("k"))
	if m.offset != 0 {
		t.Errorf("offset after scrolling back = %d, want 0", m.offset)
	}
}

func TestBrowseDescend(t *testing.T) {
	m := browseFixture()
	m, _ = update(t, m, keyMsg("j"))

	m, cmd := update(t, m, keyMsg("enter"))
	if got := m.route.String(); got != "electricity/prices" {
		t.Errorf("route after enter = %q, want %q", got, "electricity/prices")
	}
	if !m.loading {
		t.Error("model should be loading after descending")
	}
	if cmd == nil {
		t.Error("descending should schedule a describe call")
	}
}

func TestBrowseDescendIntoEmptyFolder(t *testing.T) {
	m := browseFixture()
	m.node.Children = nil

	m, cmd := update(t, m, keyMsg("enter"))
	if got := m.route.String(); got != "electricity" {
		t.Errorf("route = %q, want %q", got, "electricity")
	}
	if cmd != nil {
		t.Error("enter on an empty folder should be a no-op")
	}
}

func TestBrowseAscend(t *testing.T) {
	m := browseFixture()

	m, cmd := update(t, m, keyMsg("backspace"))
	if !m.route.IsRoot() {
		t.Errorf("route after backspace = %q, want the root", m.route)
	}
	if !m.loading || cmd == nil {
		t.Error("ascending should schedule a describe call")
	}
}

func TestBrowseAscendFromRootIsNoop(t *testing.T) {
	m := browseFixture()
	m.route = eia.Route{}
	m.node.Route = eia.Route{}

	m, cmd := update(t, m, keyMsg("backspace"))
	if !m.route.IsRoot() {
		t.Errorf("route = %q, want the root", m.route)
	}
	if cmd != nil {
		t.Error("backspace at the root should be a no-op")
	}
}

func TestBrowseEnterOnLeafIsNoop(t *testing.T) {
	m := browseFixture()
	m.node = &eia.Node{
		Route:       eia.ParseRoute("electricity/retail-sales"),
		Kind:        eia.KindLeaf,
		Facets:      []string{"stateid"},
		Frequencies: []string{"monthly"},
		Columns:     []string{"revenue"},
	}
	m.route = m.node.Route

	m, cmd := update(t, m, keyMsg("enter"))
	if got := m.route.String(); got != "electricity/retail-sales" {
		t.Errorf("route = %q, want unchanged", got)
	}
	if cmd != nil {
		t.Error("enter on a dataset should be a no-op")
	}
}

func TestBrowseNodeMsg(t *testing.T) {
	m := browseFixture()
	m.loading = true
	m.cursor = 2
	m.offset = 1

	next := &eia.Node{Route: eia.ParseRoute("natural-gas"), Kind: eia.KindIntermediate}
	m, _ = update(t, m, nodeMsg{node: next})

	if m.loading {
		t.Error("loading should clear once the node arrives")
	}
	if m.node != next {
		t.Error("node not stored")
	}
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("cursor/offset = %d/%d, want 0/0", m.cursor, m.offset)
	}
}

func TestBrowseNodeMsgError(t *testing.T) {
	m := browseFixture()
	wantErr := errors.New("boom")

	m, cmd := update(t, m, nodeMsg{err: wantErr})
	if m.err != wantErr {
		t.Errorf("err = %v, want %v", m.err, wantErr)
	}
	if cmd == nil {
		t.Fatal("error should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("error should produce a quit message")
	}
}

func TestBrowseQuitKeys(t *testing.T) {
	msgs := map[string]tea.Msg{
		"q":   keyMsg("q"),
		"esc": tea.KeyMsg{Type: tea.KeyEsc},
	}
	for key, msg := range msgs {
		m := browseFixture()
		_, cmd := update(t, m, msg)
		if cmd == nil {
			t.Fatalf("%q should quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q should produce a quit message", key)
		}
	}
}

func TestBrowseViewChildren(t *testing.T) {
	m := browseFixture()
	view := m.View()

	for _, want := range []string{"electricity", "retail-sales", "prices", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseViewLeaf(t *testing.T) {
	m := browseFixture()
	m.node = &eia.Node{
		Route:       eia.ParseRoute("electricity/retail-sales"),
		Kind:        eia.KindLeaf,
		Facets:      []string{"stateid", "sectorid"},
		Frequencies: []string{"monthly"},
		Columns:     []string{"revenue"},
	}
	m.route = m.node.Route

	view := m.View()
	for _, want := range []string{"Facets", "stateid, sectorid", "eiascout get electricity/retail-sales"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseViewLoading(t *testing.T) {
	m := browseFixture()
	m.loading = true

	if view := m.View(); !strings.Contains(view, "Loading") {
		t.Errorf("loading view = %q, want a loading line", view)
	}
}
