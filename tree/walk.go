package tree

import "errors"

// ErrCycle is returned if a walk meets a key twice, i.e. the index does not
// describe a tree.
var ErrCycle = errors.New("child index contains a cycle")

// ErrHalt may be returned by an action to stop a walk early. Walks return
// nil in this case.
var ErrHalt = errors.New("halt walk")

// Action is a function to be performed on a key during a walk. parent is
// the key of the parent, position is the index of the key within its
// parent's children.
type Action[K comparable] func(key K, parent K, position int) error

// Predicate is a function type to match against keys of the index.
type Predicate[K comparable] func(key K) bool

// TopDown walks the sub-tree starting at start in pre-order, calling action
// for every key below start. start itself is not visited.
func (ix *Index[K]) TopDown(start K, action Action[K]) error {
	seen := map[K]bool{start: true}
	err := ix.topDown(start, action, seen)
	if errors.Is(err, ErrHalt) {
		return nil
	}
	return err
}

func (ix *Index[K]) topDown(parent K, action Action[K], seen map[K]bool) error {
	for i, ch := range ix.Children(parent) {
		if seen[ch] {
			tracer().Errorf("cycle in child index at %v", ch)
			return ErrCycle
		}
		seen[ch] = true
		if err := action(ch, parent, i); err != nil {
			return err
		}
		if err := ix.topDown(ch, action, seen); err != nil {
			return err
		}
	}
	return nil
}

// BottomUp walks the sub-tree starting at start in post-order, calling action
// for every key below start. Children are visited before their parent.
// start itself is not visited.
func (ix *Index[K]) BottomUp(start K, action Action[K]) error {
	seen := map[K]bool{start: true}
	err := ix.bottomUp(start, action, seen)
	if errors.Is(err, ErrHalt) {
		return nil
	}
	return err
}

func (ix *Index[K]) bottomUp(parent K, action Action[K], seen map[K]bool) error {
	for i, ch := range ix.Children(parent) {
		if seen[ch] {
			tracer().Errorf("cycle in child index at %v", ch)
			return ErrCycle
		}
		seen[ch] = true
		if err := ix.bottomUp(ch, action, seen); err != nil {
			return err
		}
		if err := action(ch, parent, i); err != nil {
			return err
		}
	}
	return nil
}

// Descendants returns all keys below start in post-order.
func (ix *Index[K]) Descendants(start K) []K {
	var keys []K
	_ = ix.BottomUp(start, func(key K, _ K, _ int) error {
		keys = append(keys, key)
		return nil
	})
	return keys
}

// DescendantsWith returns the keys below start matching predicate, in
// pre-order.
func (ix *Index[K]) DescendantsWith(start K, predicate Predicate[K]) []K {
	var keys []K
	_ = ix.TopDown(start, func(key K, _ K, _ int) error {
		if predicate(key) {
			keys = append(keys, key)
		}
		return nil
	})
	return keys
}

// FirstDescendantWith returns the first key below start in pre-order
// matching predicate.
func (ix *Index[K]) FirstDescendantWith(start K, predicate Predicate[K]) (K, bool) {
	var found K
	var ok bool
	_ = ix.TopDown(start, func(key K, _ K, _ int) error {
		if predicate(key) {
			found, ok = key, true
			return ErrHalt
		}
		return nil
	})
	return found, ok
}
