// Package selection keeps the set of selected file identifiers consistent
// with the currently visible (possibly filtered) list across refresh,
// filter toggling, and batch deletion.
package selection

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shareling/internal/client/models"
	"github.com/dmitrijs2005/shareling/internal/common"
)

// Broker is the subset of the API client the coordinator needs.
type Broker interface {
	ListFiles(ctx context.Context) ([]models.FileRecord, error)
	DeleteFile(ctx context.Context, fileID string) error
}

// Coordinator owns the file list, the visibility filter and the selection
// set. All mutations go through its methods; the selection is always a
// subset of the visible list's identifiers.
type Coordinator struct {
	broker Broker

	mu          sync.Mutex
	items       []models.FileRecord
	showDeleted bool
	selected    map[string]struct{}
}

// New constructs an empty Coordinator over the given broker.
func New(broker Broker) *Coordinator {
	return &Coordinator{
		broker:   broker,
		selected: make(map[string]struct{}),
	}
}

// Refresh replaces the list with the broker's current view. Selection is
// cleared unconditionally on success: simpler and safer than diffing a stale
// selection against the new list.
func (c *Coordinator) Refresh(ctx context.Context) error {
	items, err := c.broker.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("refreshing list: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.selected = make(map[string]struct{})
	return nil
}

// Visible returns the filtered list: soft-deleted records are hidden unless
// the show-deleted filter is on.
func (c *Coordinator) Visible() []models.FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

func (c *Coordinator) visibleLocked() []models.FileRecord {
	out := make([]models.FileRecord, 0, len(c.items))
	for _, it := range c.items {
		if !c.showDeleted && it.Status == common.FileStatusDeleted {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ShowDeleted reports the current filter setting.
func (c *Coordinator) ShowDeleted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showDeleted
}

// ToggleShowDeleted flips the visibility filter. Selection is cleared since
// a previously selected row may no longer be visible.
func (c *Coordinator) ToggleShowDeleted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showDeleted = !c.showDeleted
	c.selected = make(map[string]struct{})
}

// Toggle flips one identifier in or out of the selection. Identifiers not in
// the visible list are ignored.
func (c *Coordinator) Toggle(fileID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := false
	for _, it := range c.visibleLocked() {
		if it.FileID == fileID {
			visible = true
			break
		}
	}
	if !visible {
		return
	}

	if _, ok := c.selected[fileID]; ok {
		delete(c.selected, fileID)
	} else {
		c.selected[fileID] = struct{}{}
	}
}

// ToggleAll clears the selection when it already covers the whole visible
// list, and selects exactly the visible identifiers otherwise. The full
// unfiltered list is never considered.
func (c *Coordinator) ToggleAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := c.visibleLocked()
	if len(c.selected) == len(visible) {
		c.selected = make(map[string]struct{})
		return
	}
	c.selected = make(map[string]struct{}, len(visible))
	for _, it := range visible {
		c.selected[it.FileID] = struct{}{}
	}
}

// Selected returns the selected identifiers in visible-list order.
func (c *Coordinator) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedLocked()
}

func (c *Coordinator) selectedLocked() []string {
	out := make([]string, 0, len(c.selected))
	for _, it := range c.visibleLocked() {
		if _, ok := c.selected[it.FileID]; ok {
			out = append(out, it.FileID)
		}
	}
	return out
}

// DeleteSelected issues one delete call per selected identifier, in visible
// order. The batch is not atomic: the first failure aborts the remaining
// sequence and is surfaced as one aggregate error; already-applied deletes
// are not rolled back. A refresh runs afterward regardless of the outcome so
// the local list reconciles with whatever state the broker reached.
func (c *Coordinator) DeleteSelected(ctx context.Context) error {
	c.mu.Lock()
	ids := c.selectedLocked()
	c.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	var batchErr error
	for _, id := range ids {
		if err := c.broker.DeleteFile(ctx, id); err != nil {
			batchErr = fmt.Errorf("deleting %s: %w", id, err)
			break
		}
	}

	refreshErr := c.Refresh(ctx)

	if batchErr != nil {
		return batchErr
	}
	return refreshErr
}

// ShareLinks renders one public link per selected identifier, one per line,
// using base as the link prefix (e.g. "https://host/d").
func (c *Coordinator) ShareLinks(base string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.selectedLocked()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf("%s/%s", base, id))
	}
	return out
}
