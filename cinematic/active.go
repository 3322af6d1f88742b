package cinematic

// ActiveTable records which sequence names are running. A name is added the
// first time it is started and afterwards only flips between true and false;
// entries are never removed.
//
// ActiveTable is not safe for concurrent use. It belongs to one Player and is
// touched only from the goroutine that drives it.
type ActiveTable struct {
	active map[string]bool
}

func NewActiveTable() *ActiveTable {
	return &ActiveTable{active: make(map[string]bool)}
}

// Start marks name as running.
func (a *ActiveTable) Start(name string) {
	a.active[name] = true
}

// IsActive reports whether name is running. Unknown names are not.
func (a *ActiveTable) IsActive(name string) bool {
	return a.active[name]
}

// Len returns how many names have ever been started.
func (a *ActiveTable) Len() int {
	return len(a.active)
}

// Running returns the names currently marked active, in no particular order.
func (a *ActiveTable) Running() []string {
	var out []string
	for name, on := range a.active {
		if on {
			out = append(out, name)
		}
	}
	return out
}

func (a *ActiveTable) deactivate(name string) {
	a.active[name] = false
}
