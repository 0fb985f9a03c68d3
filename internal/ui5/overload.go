package ui5

// ResolveOverloads walks the extends chain of cls, root ancestor first, and
// collects the same-named non-restricted methods declared by each ancestor.
// The walk stops at the first ancestor method whose visibility differs from
// method; in that case the methods collected so far are returned with
// emitOwn == false and the caller must not emit its own declaration.
// A missing ancestor ends the chain without blocking.
func ResolveOverloads(classes map[string]*Symbol, cls *Symbol, method *Method) (inherited []*Method, emitOwn bool) {
	if cls == nil || method == nil {
		return nil, true
	}
	return overloads(classes, cls, method, map[string]bool{cls.Name: true})
}

func overloads(classes map[string]*Symbol, cls *Symbol, method *Method, visited map[string]bool) ([]*Method, bool) {
	if cls.Extends == "" || method.Name == "" {
		return nil, true
	}
	parent, ok := classes[cls.Extends]
	if !ok || visited[parent.Name] {
		return nil, true
	}
	visited[parent.Name] = true

	inherited, ok := overloads(classes, parent, method, visited)
	if !ok {
		return inherited, false
	}
	for _, m := range parent.Methods {
		if m.Name != method.Name || m.Visibility == VisibilityRestricted {
			continue
		}
		if m.Visibility != method.Visibility {
			return inherited, false
		}
		inherited = append(inherited, m)
	}
	return inherited, true
}
