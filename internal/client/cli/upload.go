package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/shareling/internal/client/transfer"
	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/filex"
)

// upload drives one file through the register → transfer → report sequence.
// Usage: upload <path> [expiresInDays]
func (a *App) upload(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in first.")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: upload <path> [expiresInDays]")
		return
	}
	path := args[0]

	days := common.DefaultExpiresInDays
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "Invalid expiry %q: must be a number of days\n", args[1])
			return
		}
		days = parsed
	}

	intent, err := a.buildIntent(path, days)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	o := transfer.New(a.api, transfer.WithSignals(
		func() {
			fmt.Fprintf(a.out, "Uploading %s...\n", intent.FileName)
		},
		func(res transfer.Result) {
			if res.OK {
				fmt.Fprintf(a.out, "Upload finished: %s\n", res.FileID)
			} else {
				fmt.Fprintf(a.out, "Upload failed: %s\n", res.Reason)
			}
		},
	))

	res := o.Run(ctx, *intent)
	if !res.OK {
		return
	}

	// The orchestrator never edits the list; the consumer refreshes it.
	a.refresh(ctx)
	fmt.Fprintf(a.out, "Share link: %s/%s\n", a.config.ShareBaseURL, res.FileID)
}

// buildIntent assembles an UploadIntent from a local path. Content type
// detection may come up empty; the orchestrator applies the generic fallback.
func (a *App) buildIntent(path string, days int) (*transfer.Intent, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	size, err := filex.Size(path)
	if err != nil {
		return nil, err
	}

	ct, err := filex.DetectContentType(path)
	if err != nil {
		return nil, err
	}

	return &transfer.Intent{
		FileName:      filepath.Base(path),
		ContentType:   ct,
		SizeBytes:     size,
		ExpiresInDays: days,
		Body:          body,
	}, nil
}
