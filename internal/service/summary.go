package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/bits"

	"github.com/lachho/devsoc/internal/catalogue"
)

// ItemQuantity is one base ingredient and the total units a summary needs.
type ItemQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Summary is a fully expanded recipe. Ingredients are listed in the order they
// were first reached during expansion.
type Summary struct {
	Name        string         `json:"name"`
	CookTime    int            `json:"cookTime"`
	Ingredients []ItemQuantity `json:"ingredients"`
}

func (s Summary) clone() Summary {
	s.Ingredients = append([]ItemQuantity{}, s.Ingredients...)
	return s
}

// Summarize expands the recipe registered under name into its total cook time
// and base ingredient quantities. Nested recipes are expanded with their
// quantity as a multiplier, and an ingredient reached along several paths is
// summed into one line.
//
// It fails with ErrNotFound when name is not a registered recipe, with an
// *UnresolvedReferenceError when any required item is missing, and with a
// *CyclicReferenceError when a recipe requires itself, directly or through
// other recipes. Totals that do not fit in an int fail with ErrQuantityOverflow.
// No partial summary is returned on failure.
func (s *Service) Summarize(ctx context.Context, name string) (Summary, error) {
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(name); ok {
			s.metrics.SummaryCacheHit()
			s.metrics.SummaryComputed("ok")
			return cached.clone(), nil
		}
	}

	summary, err := s.summarize(ctx, name)
	if err != nil {
		s.metrics.SummaryComputed(summaryResult(err))
		slog.Debug("summary failed", "name", name, "error", err)
		return Summary{}, err
	}

	// Entries are immutable and every name in a successful expansion resolved,
	// so this result holds for the life of the process.
	if s.summaries != nil {
		s.summaries.Add(name, summary.clone())
	}
	s.metrics.SummaryComputed("ok")
	return summary, nil
}

func (s *Service) summarize(ctx context.Context, name string) (Summary, error) {
	root, err := s.store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, catalogue.ErrEntryNotFound) {
			return Summary{}, fmt.Errorf("summarize %q: %w", name, ErrNotFound)
		}
		return Summary{}, err
	}
	if !root.IsRecipe() {
		return Summary{}, fmt.Errorf("summarize %q: %s is an ingredient: %w", name, name, ErrNotFound)
	}

	x := &expansion{
		ctx:    ctx,
		store:  s.store,
		totals: make(map[string]int),
		active: make(map[string]bool),
	}
	if err := x.expand(root, 1); err != nil {
		return Summary{}, err
	}

	ingredients := make([]ItemQuantity, 0, len(x.order))
	for _, n := range x.order {
		ingredients = append(ingredients, ItemQuantity{Name: n, Quantity: x.totals[n]})
	}
	return Summary{Name: name, CookTime: x.cookTime, Ingredients: ingredients}, nil
}

func summaryResult(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnresolvedReference):
		return "unresolved_reference"
	case errors.Is(err, ErrCyclicReference):
		return "cyclic_reference"
	case errors.Is(err, ErrQuantityOverflow):
		return "quantity_overflow"
	default:
		return "error"
	}
}

// expansion is the state threaded through one Summarize call.
type expansion struct {
	ctx   context.Context
	store Store

	cookTime int
	totals   map[string]int
	order    []string

	// path and active hold the recipes currently being expanded, outermost
	// first. A recipe reached twice along different branches is not on the
	// path the second time and is expanded again.
	path   []string
	active map[string]bool
}

func (x *expansion) expand(recipe catalogue.Entry, multiplier int) error {
	if err := x.ctx.Err(); err != nil {
		return err
	}

	x.path = append(x.path, recipe.Name)
	x.active[recipe.Name] = true
	defer func() {
		x.path = x.path[:len(x.path)-1]
		delete(x.active, recipe.Name)
	}()

	for _, item := range recipe.RequiredItems {
		qty, ok := mulNonNeg(item.Quantity, multiplier)
		if !ok {
			return overflow(item.Name, recipe.Name)
		}

		entry, err := x.store.Get(x.ctx, item.Name)
		if err != nil {
			if errors.Is(err, catalogue.ErrEntryNotFound) {
				return &UnresolvedReferenceError{Name: item.Name, Recipe: recipe.Name}
			}
			return err
		}

		switch entry.Kind {
		case catalogue.KindIngredient:
			t, ok := mulNonNeg(entry.CookTime, qty)
			if ok {
				x.cookTime, ok = addNonNeg(x.cookTime, t)
			}
			if !ok || !x.add(entry.Name, qty) {
				return overflow(item.Name, recipe.Name)
			}
		case catalogue.KindRecipe:
			if x.active[entry.Name] {
				path := append(append([]string{}, x.path...), entry.Name)
				return &CyclicReferenceError{Path: path}
			}
			if err := x.expand(entry, qty); err != nil {
				return err
			}
		default:
			return fmt.Errorf("entry %q has unknown type %q", entry.Name, entry.Kind)
		}
	}
	return nil
}

func (x *expansion) add(name string, qty int) bool {
	total, seen := x.totals[name]
	sum, ok := addNonNeg(total, qty)
	if !ok {
		return false
	}
	if !seen {
		x.order = append(x.order, name)
	}
	x.totals[name] = sum
	return true
}

func overflow(item, recipe string) error {
	return fmt.Errorf("%w: %q required by %q", ErrQuantityOverflow, item, recipe)
}

// mulNonNeg and addNonNeg report false when the result does not fit in an int.
// Both operands must be non-negative, which registration guarantees for cook
// times and quantities.
func mulNonNeg(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

func addNonNeg(a, b int) (int, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > math.MaxInt {
		return 0, false
	}
	return int(sum), true
}
