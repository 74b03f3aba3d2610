package model

import "github.com/mark3labs/ridl/internal/diag"

// CheckUniqueNames reports sibling items that share a name within one module.
// Each duplicate after the first occurrence yields one diagnostic.
func (m *Module) CheckUniqueNames() error {
	var c diag.Collector
	m.checkUniqueNames(&c)
	return c.Err()
}

func (m *Module) checkUniqueNames(c *diag.Collector) {
	seen := make(map[string]diag.Span, len(m.Items))
	for _, it := range m.Items {
		name := it.ItemName()
		if first, dup := seen[name]; dup {
			c.Addf(it.ItemSpan(), diag.UnsupportedConstruct,
				"duplicate item name %q in the same scope (first declared at %s)", name, first)
		} else {
			seen[name] = it.ItemSpan()
		}
		if sub, ok := it.(*Module); ok {
			sub.checkUniqueNames(c)
		}
	}
}
