package tui

import (
	"io"

	"eduxctl/pkg/edux"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Spin runs action behind a spinner. Without a terminal the action just runs.
func Spin(title string, enabled bool, action func()) {
	if !enabled {
		action()
		return
	}
	_ = spinner.New().
		Title(title).
		Action(action).
		Run()
}

// RenderTree draws a classification tree under the course name.
func RenderTree(course string, root *edux.Node) string {
	t := tree.Root(course).
		RootStyle(accentStyle).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("238")))
	addBranches(t, root)
	return t.String()
}

func addBranches(t *tree.Tree, n *edux.Node) {
	if n == nil {
		return
	}
	for _, name := range n.Names() {
		child, _ := n.Child(name)
		if child.IsLeaf() {
			t.Child(name)
			continue
		}
		sub := tree.Root(name)
		addBranches(sub, child)
		t.Child(sub)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// RenderForm prints every field of a form. The highlighted field is marked.
func RenderForm(w io.Writer, f *edux.Form, highlight string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"", "Field", "Value", "Type"})
	for _, field := range f.Fields {
		mark := ""
		if field.Name == highlight {
			mark = "▶"
		}
		t.AppendRow(table.Row{mark, field.Name, field.Value, field.Type})
	}
	t.Render()
}

// RenderCourses prints the course list.
func RenderCourses(w io.Writer, courses []string) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Course"})
	for i, c := range courses {
		t.AppendRow(table.Row{i + 1, c})
	}
	t.AppendFooter(table.Row{"", len(courses)})
	t.Render()
}
