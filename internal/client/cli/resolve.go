package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shareling/internal/client/resolve"
)

// navigate is the one-shot retrieval action for links that resolve ready.
// In a browser this is a location change; here we print the endpoint the
// recipient's browser would be sent to.
func (a *App) navigate(fileID string) {
	fmt.Fprintf(a.out, "Download: %s\n", a.api.DownloadURL(fileID))
}

// resolveLink classifies a public link the way the download page does.
func (a *App) resolveLink(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: resolve <fileId>")
		return
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	res := a.resolver.Resolve(opCtx, args[0])

	switch res.Kind {
	case resolve.KindReady:
		if !res.Auto {
			fmt.Fprintf(a.out, "Ready: %s\n", a.api.DownloadURL(args[0]))
		}
	case resolve.KindUploading:
		fmt.Fprintln(a.out, "File is still being prepared (upload in progress). Try again shortly.")
	case resolve.KindPassword:
		fmt.Fprintln(a.out, "File is password-protected. (Unlocking is not supported yet.)")
	case resolve.KindExpired:
		fmt.Fprintln(a.out, "File has expired and is no longer available.")
	case resolve.KindDeleted:
		fmt.Fprintln(a.out, "File has been deleted.")
	case resolve.KindNotFound:
		fmt.Fprintln(a.out, "File does not exist or is no longer accessible.")
	case resolve.KindError:
		fmt.Fprintf(a.out, "Error: %s\n", res.Message)
	default:
		fmt.Fprintln(a.out, "Preparing download...")
	}

	if res.Meta != nil {
		m := res.Meta
		name := m.OriginalFileName
		if name == "" {
			name = m.FileID
		}
		fmt.Fprintf(a.out, "  Name: %s\n  Size: %s\n  Type: %s\n  Created: %s\n  Expires: %s\n",
			name, fmtSize(m.SizeBytes), m.ContentType, fmtTime(m.CreatedAt), fmtTime(m.ExpiresAt))
	}
}
