package cli

import (
	"context"
	"fmt"
	"time"
)

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtSize(n *int64) string {
	if n == nil {
		return ""
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	val := float64(*n)
	i := 0
	for val >= 1024 && i < len(units)-1 {
		val /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", *n, units[0])
	}
	return fmt.Sprintf("%.2f %s", val, units[i])
}

// list renders the visible rows with selection markers.
func (a *App) list() {
	items := a.coordinator.Visible()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No files.")
		return
	}

	selected := make(map[string]bool)
	for _, id := range a.coordinator.Selected() {
		selected[id] = true
	}

	for _, it := range items {
		marker := " "
		if selected[it.FileID] {
			marker = "*"
		}
		name := it.OriginalFileName
		if name == "" {
			name = it.FileID
		}
		fmt.Fprintf(a.out, "[%s] %-36s  %-24s  %-9s  %10s  expires %s\n",
			marker, it.FileID, name, it.Status, fmtSize(it.SizeBytes), fmtTime(it.ExpiresAt))
	}
}

func (a *App) refresh(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return
	}
	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if err := a.coordinator.Refresh(opCtx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	a.list()
}

func (a *App) toggle(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: select <fileId>")
		return
	}
	a.coordinator.Toggle(args[0])
	fmt.Fprintf(a.out, "%d selected\n", len(a.coordinator.Selected()))
}

func (a *App) toggleAll() {
	a.coordinator.ToggleAll()
	fmt.Fprintf(a.out, "%d selected\n", len(a.coordinator.Selected()))
}

func (a *App) toggleShowDeleted() {
	a.coordinator.ToggleShowDeleted()
	if a.coordinator.ShowDeleted() {
		fmt.Fprintln(a.out, "Showing deleted files.")
	} else {
		fmt.Fprintln(a.out, "Hiding deleted files.")
	}
	a.list()
}

func (a *App) links() {
	links := a.coordinator.ShareLinks(a.config.ShareBaseURL)
	if len(links) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return
	}
	for _, l := range links {
		fmt.Fprintln(a.out, l)
	}
}

func (a *App) deleteSelected(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return
	}
	if len(a.coordinator.Selected()) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if err := a.coordinator.DeleteSelected(opCtx); err != nil {
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
	}
	a.list()
}
