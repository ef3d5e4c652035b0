// Package transfer drives a single file from local selection to a durable,
// retrievable broker record: register the intent, perform the one
// credentialed write to object storage, report the outcome.
package transfer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shareling/internal/client/api"
	"github.com/dmitrijs2005/shareling/internal/common"
	"github.com/dmitrijs2005/shareling/internal/netx"
)

// Intent describes one pending transfer before the broker record exists.
// It is created on file selection, consumed by a single Run, and discarded.
type Intent struct {
	FileName      string
	ContentType   string
	SizeBytes     int64
	ExpiresInDays int
	Body          []byte
}

// Validate checks the intent locally, before any network call. A missing
// file name means nothing was selected; a zero-byte body is permitted.
func (in *Intent) Validate() error {
	if in.FileName == "" {
		return fmt.Errorf("%w: no file selected", common.ErrorValidation)
	}
	if in.SizeBytes < 0 {
		return fmt.Errorf("%w: negative size", common.ErrorValidation)
	}
	if in.ExpiresInDays < common.MinExpiresInDays || in.ExpiresInDays > common.MaxExpiresInDays {
		return fmt.Errorf("%w: expiresInDays must be between %d and %d",
			common.ErrorValidation, common.MinExpiresInDays, common.MaxExpiresInDays)
	}
	return nil
}

// Broker registers upload intents. Implemented by api.Client.
type Broker interface {
	RegisterUpload(ctx context.Context, req api.RegisterUploadRequest) (*api.RegisterUploadResponse, error)
}

// Transport performs the single credentialed write to object storage.
type Transport func(ctx context.Context, cred netx.Credential, body []byte) error

// State is the orchestration phase. Steps are strictly sequential: the
// transfer never starts before registration's credential is known.
type State int

const (
	StateIdle State = iota
	StateRegistering
	StateTransferring
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRegistering:
		return "registering"
	case StateTransferring:
		return "transferring"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result reports the outcome of one orchestration. Exactly one Result is
// delivered per Run, whichever step failed.
type Result struct {
	OK     bool
	FileID string
	Reason string
}

// Orchestrator runs the register → transfer → report sequence. It owns no
// shared state between invocations, but it does NOT serialize concurrent
// Run calls: starting a new run while a previous one for the same consumer
// session is in flight is the caller's invariant to hold (the UI disables
// the trigger until Finished fires).
type Orchestrator struct {
	broker     Broker
	transport  Transport
	onBegin    func()
	onFinished func(Result)

	state State
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTransport overrides the storage transport (tests, alternate stacks).
func WithTransport(t Transport) Option {
	return func(o *Orchestrator) { o.transport = t }
}

// WithSignals installs the begin/finished observers. Begin fires once,
// before any network call; Finished fires exactly once with the outcome.
// Either may be nil.
func WithSignals(onBegin func(), onFinished func(Result)) Option {
	return func(o *Orchestrator) {
		o.onBegin = onBegin
		o.onFinished = onFinished
	}
}

// New constructs an Orchestrator over the given broker.
func New(broker Broker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		broker:    broker,
		transport: netx.UploadToPresignedURL,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current orchestration phase.
func (o *Orchestrator) State() State {
	return o.state
}

// Run drives one intent to completion. Validation failures abort before the
// begin signal and before any network call. After begin fires, the sequence
// always ends in exactly one Finished signal; there is no mid-flight abort.
// The caller refreshes its list after a successful result; Run never edits
// the broker's list directly.
func (o *Orchestrator) Run(ctx context.Context, intent Intent) Result {
	if err := intent.Validate(); err != nil {
		return Result{OK: false, Reason: err.Error()}
	}

	if intent.ContentType == "" {
		intent.ContentType = common.DefaultContentType
	}

	if o.onBegin != nil {
		o.onBegin()
	}

	res := o.run(ctx, intent)

	o.state = StateDone
	if o.onFinished != nil {
		o.onFinished(res)
	}
	return res
}

func (o *Orchestrator) run(ctx context.Context, intent Intent) Result {
	o.state = StateRegistering
	reg, err := o.broker.RegisterUpload(ctx, api.RegisterUploadRequest{
		OriginalFileName: intent.FileName,
		ContentType:      intent.ContentType,
		SizeBytes:        intent.SizeBytes,
		ExpiresInDays:    intent.ExpiresInDays,
	})
	if err != nil {
		return Result{OK: false, Reason: fmt.Sprintf("registration failed: %v", err)}
	}

	o.state = StateTransferring
	if err := o.transport(ctx, reg.Upload, intent.Body); err != nil {
		return Result{OK: false, FileID: reg.FileID, Reason: err.Error()}
	}

	return Result{OK: true, FileID: reg.FileID}
}
