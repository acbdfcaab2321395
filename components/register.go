// Package components is the standard widget catalogue: layout containers,
// form inputs, dialogs, tabs and tables.
//
// Every widget renders hand-written markup through templ components and keeps
// its state in exported fields so it survives the session round trip.
// Register the catalogue before decoding session trees:
//
//	kinds := hxtree.NewKinds()
//	components.Register(kinds)
package components

import "github.com/pthm/hxtree"

// Register adds every widget kind of the catalogue to kinds.
func Register(kinds *hxtree.Kinds) {
	kinds.Register(
		func() hxtree.Widget { return &Group{} },
		func() hxtree.Widget { return &Grid{} },
		func() hxtree.Widget { return &Row{} },
		func() hxtree.Widget { return &Column{} },
		func() hxtree.Widget { return &HTML{} },
		func() hxtree.Widget { return &Image{} },
		func() hxtree.Widget { return &Link{} },
		func() hxtree.Widget { return &Button{} },
		func() hxtree.Widget { return &Menu{} },
		func() hxtree.Widget { return &MenuItem{} },
		func() hxtree.Widget { return &HiddenInput{} },
		func() hxtree.Widget { return &TextInput{} },
		func() hxtree.Widget { return &TextArea{} },
		func() hxtree.Widget { return &Select{} },
		func() hxtree.Widget { return &FileInput{} },
		func() hxtree.Widget { return &Tab{} },
		func() hxtree.Widget { return &TabItem{} },
		func() hxtree.Widget { return &Modal{} },
		func() hxtree.Widget { return &ConfirmModal{} },
		func() hxtree.Widget { return &Table{} },
		func() hxtree.Widget { return &Pager{} },
	)
}
