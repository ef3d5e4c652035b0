// Package resolve classifies a public share link into exactly one rendering
// outcome: a download (with a one-shot auto-redirect), a not-yet-ready
// notice, or a terminal failure (expired, deleted, not found, error).
package resolve

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/shareling/internal/client/api"
	"github.com/dmitrijs2005/shareling/internal/client/models"
)

// Kind discriminates the resolution outcome. Exactly one holds at a time;
// transitions are one-way out of KindLoading and only a subject change
// starts a fresh run.
type Kind string

const (
	KindLoading   Kind = "loading"
	KindUploading Kind = "uploading"
	KindReady     Kind = "ready"
	KindPassword  Kind = "password-required"
	KindExpired   Kind = "expired"
	KindDeleted   Kind = "deleted"
	KindNotFound  Kind = "not-found"
	KindError     Kind = "error"
)

// Resolution is the discriminated result of resolving one link.
type Resolution struct {
	Kind Kind
	// Meta carries the public metadata projection when the broker returned one.
	Meta *models.FileRecord
	// Auto is set on the KindReady resolution that triggered the one-shot
	// navigation. Re-resolving the same identifier yields Auto=false.
	Auto bool
	// Message holds the raw broker message for KindError.
	Message string
}

// MetadataClient fetches the public metadata projection for a link
// identifier. Implemented by api.Client.
type MetadataClient interface {
	PublicMetadata(ctx context.Context, fileID string) (*models.FileRecord, error)
}

// Navigator performs the one navigation to the retrieval endpoint when a
// link resolves ready. It fires at most once per subject.
type Navigator func(fileID string)

// Resolver resolves link identifiers. Safe for use from the goroutine that
// owns the link view plus any in-flight fetch it spawned: stale results are
// discarded by generation, so a response for a replaced subject never
// overwrites a newer one.
type Resolver struct {
	client   MetadataClient
	navigate Navigator

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
	subject    string
	navigated  bool
	state      Resolution
}

// New constructs a Resolver. navigate may be nil when the consumer renders
// the ready state without an automatic redirect.
func New(client MetadataClient, navigate Navigator) *Resolver {
	return &Resolver{
		client:   client,
		navigate: navigate,
		state:    Resolution{Kind: KindLoading},
	}
}

// Resolution returns the current outcome.
func (r *Resolver) Resolution() Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Resolve fetches metadata for fileID once and stores the classification.
// An empty identifier is a no-op: the state stays loading. Changing the
// identifier cancels any in-flight resolution and discards its result.
// Re-resolving the current identifier is allowed (a second effect run) and
// must not re-trigger navigation.
func (r *Resolver) Resolve(ctx context.Context, fileID string) Resolution {
	if fileID == "" {
		return r.Resolution()
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	if fileID != r.subject {
		// Fresh subject: the navigated latch is scoped to one resolution run.
		r.subject = fileID
		r.navigated = false
	}
	r.generation++
	gen := r.generation
	r.state = Resolution{Kind: KindLoading}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	meta, err := r.client.PublicMetadata(ctx, fileID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		// A newer resolution started while this one was in flight.
		return r.state
	}
	cancel()
	r.cancel = nil

	var res Resolution
	if err != nil {
		res = classifyError(err)
	} else {
		res = r.classifyMeta(fileID, meta)
	}
	r.state = res
	return res
}

// classifyMeta maps broker-reported lifecycle state to an outcome. Password
// gating is checked before status gating: a password-protected file must not
// read as ready.
func (r *Resolver) classifyMeta(fileID string, meta *models.FileRecord) Resolution {
	if meta.PasswordRequired {
		return Resolution{Kind: KindPassword, Meta: meta}
	}

	if strings.EqualFold(meta.Status, "ready") {
		auto := !r.navigated
		if auto && r.navigate != nil {
			r.navigate(fileID)
		}
		r.navigated = true
		return Resolution{Kind: KindReady, Meta: meta, Auto: auto}
	}

	// Not downloadable yet (e.g., still transferring).
	return Resolution{Kind: KindUploading, Meta: meta}
}

// classifyError maps a metadata fetch failure to a terminal outcome. The
// broker attaches a structured code on link failures; when it is absent the
// message text is matched for known substrings, in a fixed priority order.
// The substring match is a known fragility kept as a legacy fallback.
func classifyError(err error) Resolution {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "not_found":
			return Resolution{Kind: KindNotFound}
		case "deleted":
			return Resolution{Kind: KindDeleted}
		case "expired":
			return Resolution{Kind: KindExpired}
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"):
		return Resolution{Kind: KindNotFound}
	case strings.Contains(msg, "deleted"):
		return Resolution{Kind: KindDeleted}
	case strings.Contains(msg, "expired"):
		return Resolution{Kind: KindExpired}
	default:
		return Resolution{Kind: KindError, Message: err.Error()}
	}
}
