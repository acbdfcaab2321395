// Package demo is the page served by cmd/hxtree-demo: a counter, a todo
// list and a paged table, each on its own tab.
package demo

import (
	"context"

	"github.com/pthm/hxtree"
	"github.com/pthm/hxtree/components"
)

// Register adds the demo kinds and the standard components to kinds.
func Register(kinds *hxtree.Kinds) {
	components.Register(kinds)
	kinds.Register(
		func() hxtree.Widget { return &Counter{} },
		func() hxtree.Widget { return &Todos{} },
		func() hxtree.Widget { return &TodoList{} },
		func() hxtree.Widget { return &TodoItem{} },
	)
}

var sampleTodos = []string{
	"Buy groceries",
	"Review pull request",
	"Write documentation",
}

var planetColumns = []string{"Planet", "Type", "Moons"}

var planets = [][]string{
	{"Mercury", "Terrestrial", "0"},
	{"Venus", "Terrestrial", "0"},
	{"Earth", "Terrestrial", "1"},
	{"Mars", "Terrestrial", "2"},
	{"Jupiter", "Gas giant", "95"},
	{"Saturn", "Gas giant", "146"},
	{"Uranus", "Ice giant", "28"},
	{"Neptune", "Ice giant", "16"},
}

// Build creates a fresh page tree. It is the app's BuildFunc.
func Build(ctx context.Context) (*hxtree.Node, error) {
	todosNode, err := hxtree.New("todos", &Todos{})
	if err != nil {
		return nil, err
	}
	todos := todosNode.Widget.(*Todos)
	for _, title := range sampleTodos {
		if _, err := todos.Add(todosNode, title); err != nil {
			return nil, err
		}
	}

	counter, err := hxtree.New("counter", &Counter{}, hxtree.WithChildren(
		hxtree.MustNew("counter-dec", &components.Button{Value: "-", Handler: "decrement"}),
		hxtree.MustNew("counter-inc", &components.Button{Value: "+", Handler: "increment"}),
		hxtree.MustNew("counter-reset", &components.Button{Value: "Reset", Handler: "reset", Confirm: "Reset the counter?"}),
	))
	if err != nil {
		return nil, err
	}

	pager, err := hxtree.New("planets", &components.Pager{Columns: planetColumns, Data: planets, PageSize: 3})
	if err != nil {
		return nil, err
	}

	tabs, err := hxtree.New("tabs", &components.Tab{}, hxtree.WithChildren(
		hxtree.MustNew("tab-counter", &components.TabItem{Title: "Counter", Active: true}, hxtree.WithChildren(counter)),
		hxtree.MustNew("tab-todos", &components.TabItem{Title: "Todos"}, hxtree.WithChildren(todosNode)),
		hxtree.MustNew("tab-planets", &components.TabItem{Title: "Planets"}, hxtree.WithChildren(pager)),
	))
	if err != nil {
		return nil, err
	}

	root, err := hxtree.New(hxtree.RootID, &components.Group{}, hxtree.WithChildren(
		hxtree.MustNew("title", &components.HTML{Tag: "h1", Text: "hxtree demo"}),
		tabs,
	))
	if err != nil {
		return nil, err
	}
	root.AddMessage("Welcome!", hxtree.MessageInfo)
	return root, nil
}
