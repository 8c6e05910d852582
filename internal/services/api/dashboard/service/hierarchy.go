package service

import (
	"context"
	"strings"

	"posdash/internal/core/hierarchy"
	perr "posdash/internal/platform/errors"
	"posdash/internal/services/api/dashboard/domain"
)

// Hierarchy renders the menu for in.Kind under in.State
func (s *Svc) Hierarchy(ctx context.Context, in domain.HierarchyInput) (hierarchy.Menu, error) {
	schema, root, err := s.tree(ctx, in.Kind)
	if err != nil {
		return hierarchy.Menu{}, err
	}
	return hierarchy.Render(root, schema, in.State), nil
}

// Select sets one level of the selection and clears deeper ones
// Selecting the leaf slot closes the menu.
func (s *Svc) Select(_ context.Context, in domain.SelectInput) (domain.SelectResult, error) {
	schema, ok := in.Kind.Schema()
	if !ok {
		return domain.SelectResult{}, perr.InvalidArgf("unknown hierarchy kind %q", in.Kind)
	}
	st, err := in.State.Fit(schema.Depth()).Select(in.Level, in.Value)
	if err != nil {
		return domain.SelectResult{}, perr.WithField(err, "level")
	}
	return result(schema, st, in.Level == schema.Depth()-1), nil
}

// SelectNode applies a click on the node at in.Path
// The empty path is the root and clears the selection.
func (s *Svc) SelectNode(ctx context.Context, in domain.SelectNodeInput) (domain.SelectResult, error) {
	schema, root, err := s.tree(ctx, in.Kind)
	if err != nil {
		return domain.SelectResult{}, err
	}
	nodes, ok := root.Find(in.Path...)
	if !ok {
		return domain.SelectResult{}, perr.WithField(
			perr.NotFoundf("no %s node at %q", in.Kind, strings.Join(in.Path, " / ")), "path")
	}
	st, err := in.State.Fit(schema.Depth()).SelectPath(nodes)
	if err != nil {
		return domain.SelectResult{}, err
	}
	closeMenu := len(nodes) == 0 || !nodes[len(nodes)-1].HasChildren()
	return result(schema, st, closeMenu), nil
}

func result(schema hierarchy.Schema, st hierarchy.State, closeMenu bool) domain.SelectResult {
	out := domain.SelectResult{State: st, CloseMenu: closeMenu}
	if f, ok := schema.Resolve(st); ok {
		out.Filter = &f
	}
	return out
}
