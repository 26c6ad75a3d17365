package usecase

import (
	"context"
	"errors"
	"strings"

	"classifieds/services/listing/internal/entity"
	"classifieds/services/listing/internal/repo/persistent"
)

type CategoryUseCase interface {
	GetFlat(ctx context.Context) ([]entity.Category, error)
	GetTree(ctx context.Context) ([]*entity.CategoryNode, error)
	Create(ctx context.Context, name string, parentID *uint, sortOrder int) (*entity.Category, error)
	SetParent(ctx context.Context, id uint, parentID *uint) (bool, error)
}

type categoryUseCase struct {
	categoryRepo persistent.CategoryRepository
	deps         Deps
	opts         Options
}

func NewCategoryUseCase(categoryRepo persistent.CategoryRepository, deps Deps, opts Options) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: categoryRepo,
		deps:         deps.withDefaults(),
		opts:         opts.withDefaults(),
	}
}

func (uc *categoryUseCase) GetFlat(ctx context.Context) ([]entity.Category, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	return uc.categoryRepo.List(ctx)
}

func (uc *categoryUseCase) GetTree(ctx context.Context) ([]*entity.CategoryNode, error) {
	categories, err := uc.GetFlat(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

// BuildTree nests categories under their parents in two passes. A node whose
// parent is missing is a root. Nodes on a parent cycle that no root reaches
// are promoted to roots, one per cycle entry, so the result is always finite.
func BuildTree(categories []entity.Category) []*entity.CategoryNode {
	nodes := make(map[uint]*entity.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &entity.CategoryNode{Category: c, Children: []*entity.CategoryNode{}}
	}

	roots := []*entity.CategoryNode{}
	attached := make(map[uint]bool, len(categories))
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil && *c.ParentID != c.ID {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var mark func(n *entity.CategoryNode)
	mark = func(n *entity.CategoryNode) {
		if attached[n.ID] {
			return
		}
		attached[n.ID] = true
		for _, child := range n.Children {
			mark(child)
		}
	}
	for _, root := range roots {
		mark(root)
	}

	// Whatever is still unmarked hangs off a cycle.
	for _, c := range categories {
		if attached[c.ID] {
			continue
		}
		node := nodes[c.ID]
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Children = removeChild(parent.Children, node.ID)
		}
		roots = append(roots, node)
		mark(node)
	}

	return roots
}

func removeChild(children []*entity.CategoryNode, id uint) []*entity.CategoryNode {
	out := children[:0]
	for _, child := range children {
		if child.ID != id {
			out = append(out, child)
		}
	}
	return out
}

func (uc *categoryUseCase) Create(ctx context.Context, name string, parentID *uint, sortOrder int) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entity.NewValidationError("name", "name is required")
	}

	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	if parentID != nil {
		if _, err := uc.categoryRepo.GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	category := &entity.Category{Name: name, ParentID: parentID, SortOrder: sortOrder}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		uc.deps.Logger.Error("Failed to create category %q: %v", name, err)
		return nil, err
	}
	return category, nil
}

// SetParent moves a category. It walks the new parent's ancestor chain and
// refuses the move if the chain reaches the category itself.
func (uc *categoryUseCase) SetParent(ctx context.Context, id uint, parentID *uint) (bool, error) {
	ctx, cancel := uc.opts.bound(ctx)
	defer cancel()

	if parentID != nil {
		seen := map[uint]bool{}
		next := parentID
		for next != nil {
			if *next == id {
				return false, entity.ErrCategoryCycle
			}
			if seen[*next] {
				// Pre-existing cycle above us; it does not include id.
				break
			}
			seen[*next] = true

			ancestor, err := uc.categoryRepo.GetByID(ctx, *next)
			if errors.Is(err, entity.ErrNotFound) {
				if *next == *parentID {
					return false, err
				}
				break
			}
			if err != nil {
				return false, err
			}
			next = ancestor.ParentID
		}
	}

	return uc.categoryRepo.SetParent(ctx, id, parentID)
}
