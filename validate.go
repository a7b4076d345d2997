package lottie

import "fmt"

// Validate checks the references inside a: layer parents and track mattes
// must name sibling layers, parent chains must not loop, precomp layers
// must reference existing assets and assets must not include themselves.
// It returns a *SchemaError for the first problem found.
func (a *Animation) Validate() error {
	if err := validateLayers("layers", a.Layers); err != nil {
		return err
	}
	for _, as := range a.Assets {
		if err := validateLayers(fmt.Sprintf("assets[%s].layers", as.ID), as.Layers); err != nil {
			return err
		}
	}

	// Precomp references form a graph over assets, with the root
	// composition as an extra node.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(a.Assets))
	var visit func(path string, layers []*Layer, depth int) error
	visit = func(path string, layers []*Layer, depth int) error {
		if depth > maxNestingDepth {
			return schemaErrorf(path, "precomps nested deeper than %d", maxNestingDepth)
		}
		for i, l := range layers {
			if l.Kind != LayerPrecomp {
				continue
			}
			lp := fmt.Sprintf("%s[%d].refId", path, i)
			as := a.Asset(l.RefID)
			if as == nil {
				return schemaErrorf(lp, "asset %q does not exist", l.RefID)
			}
			switch state[as.ID] {
			case visiting:
				return schemaErrorf(lp, "asset %q includes itself", as.ID)
			case done:
				continue
			}
			state[as.ID] = visiting
			if err := visit(fmt.Sprintf("assets[%s].layers", as.ID), as.Layers, depth+1); err != nil {
				return err
			}
			state[as.ID] = done
		}
		return nil
	}
	return visit("layers", a.Layers, 0)
}

func validateLayers(path string, layers []*Layer) error {
	byIndex := make(map[int]int, len(layers))
	for i, l := range layers {
		if j, ok := byIndex[l.Index]; ok {
			return schemaErrorf(fmt.Sprintf("%s[%d].ind", path, i), "index %d already used by layer %d", l.Index, j)
		}
		byIndex[l.Index] = i
	}
	for i, l := range layers {
		if l.MatteParent != nil {
			if _, ok := byIndex[*l.MatteParent]; !ok {
				return schemaErrorf(fmt.Sprintf("%s[%d].tp", path, i), "matte layer %d does not exist", *l.MatteParent)
			}
		}

		seen := map[int]bool{l.Index: true}
		for p := l.Parent; p != nil; {
			j, ok := byIndex[*p]
			if !ok {
				return schemaErrorf(fmt.Sprintf("%s[%d].parent", path, i), "parent %d does not exist", *p)
			}
			if seen[*p] {
				return schemaErrorf(fmt.Sprintf("%s[%d].parent", path, i), "parent chain loops at layer %d", *p)
			}
			seen[*p] = true
			p = layers[j].Parent
		}
	}
	return nil
}
