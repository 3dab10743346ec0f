package inventory

import (
	"sort"

	"github.com/jhoicas/storetrack-api/internal/domain/entity"
)

// childrenIndex agrupa las categorías por padre ("" = raíz).
func childrenIndex(categories []*entity.Category) map[string][]*entity.Category {
	idx := make(map[string][]*entity.Category, len(categories))
	for _, c := range categories {
		parent := ""
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		idx[parent] = append(idx[parent], c)
	}
	for _, list := range idx {
		sort.Slice(list, func(i, j int) bool { return list[i].Description < list[j].Description })
	}
	return idx
}

// DescendantIDs devuelve rootID y todos sus descendientes.
// Recorrido iterativo con pila y conjunto de visitados, tolerante a ciclos en datos corruptos.
func DescendantIDs(categories []*entity.Category, rootID string) []string {
	idx := childrenIndex(categories)
	visited := map[string]bool{rootID: true}
	out := []string{rootID}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range idx[id] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child.ID)
			stack = append(stack, child.ID)
		}
	}
	return out
}

// BuildTree arma copias de las categorías con Children poblado.
// Devuelve las raíces ordenadas por descripción y un índice id → nodo.
func BuildTree(categories []*entity.Category) ([]*entity.Category, map[string]*entity.Category) {
	nodes := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		cp := *c
		cp.Children = nil
		nodes[c.ID] = &cp
	}
	idx := childrenIndex(categories)

	var roots []*entity.Category
	for _, c := range idx[""] {
		roots = append(roots, nodes[c.ID])
	}
	// Padres inexistentes: se tratan como raíces para no perder nodos.
	for parent, list := range idx {
		if parent == "" {
			continue
		}
		p, ok := nodes[parent]
		for _, c := range list {
			if ok {
				p.Children = append(p.Children, nodes[c.ID])
			} else {
				roots = append(roots, nodes[c.ID])
			}
		}
	}
	for _, n := range nodes {
		sort.Slice(n.Children, func(i, j int) bool { return n.Children[i].Description < n.Children[j].Description })
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Description < roots[j].Description })
	return roots, nodes
}

// WouldCreateCycle indica si asignar newParentID como padre de id cerraría un ciclo.
func WouldCreateCycle(categories []*entity.Category, id, newParentID string) bool {
	if newParentID == "" {
		return false
	}
	for _, d := range DescendantIDs(categories, id) {
		if d == newParentID {
			return true
		}
	}
	return false
}
