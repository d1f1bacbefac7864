// Package app provides the application services of bundlescope.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/bundlescope/internal/adapters/filesystem"
	"github.com/felixgeelhaar/bundlescope/internal/adapters/logging"
	"github.com/felixgeelhaar/bundlescope/internal/domain/bundle"
	"github.com/felixgeelhaar/bundlescope/internal/domain/fetch"
	"github.com/felixgeelhaar/bundlescope/internal/domain/schema"
	"github.com/felixgeelhaar/bundlescope/internal/domain/version"
	"github.com/felixgeelhaar/bundlescope/internal/ports"
)

// BuiltinSource is the snapshot source of the built-in registry.
const BuiltinSource = "builtin"

// ErrNoServerVersion is returned when a version check has nothing to compare.
var ErrNoServerVersion = errors.New("no server version given")

// Bundlescope is the main application service.
type Bundlescope struct {
	fs            ports.FileSystem
	logger        ports.Logger
	store         *schema.Store
	board         *fetch.Board
	formatter     schema.Formatter
	defaultSchema string
	serverVersion string
}

// Option configures a Bundlescope.
type Option func(*Bundlescope)

// WithFileSystem sets the filesystem used to read schema, bundle and settings files.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(b *Bundlescope) {
		b.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(logger ports.Logger) Option {
	return func(b *Bundlescope) {
		b.logger = logger
	}
}

// WithFormatter sets the formatter used by the post-processors.
func WithFormatter(f schema.Formatter) Option {
	return func(b *Bundlescope) {
		b.formatter = f
	}
}

// WithDefaultSchema sets the schema rendered when none is named.
func WithDefaultSchema(name string) Option {
	return func(b *Bundlescope) {
		b.defaultSchema = name
	}
}

// WithServerVersion sets the server version used by CheckServerVersion.
func WithServerVersion(v string) Option {
	return func(b *Bundlescope) {
		b.serverVersion = v
	}
}

// WithSettings applies the render and server values of s.
func WithSettings(s Settings) Option {
	return func(b *Bundlescope) {
		if f, err := s.Formatter(); err == nil {
			b.formatter = f
		}
		if s.Schema != "" {
			b.defaultSchema = s.Schema
		}
		b.serverVersion = s.ServerVersion
	}
}

// New creates a Bundlescope holding the built-in default schema.
func New(opts ...Option) *Bundlescope {
	b := &Bundlescope{
		fs:            filesystem.NewRealFileSystem(),
		logger:        logging.NewNopLogger(),
		board:         fetch.NewBoard(),
		formatter:     schema.DefaultFormatter(),
		defaultSchema: schema.DefaultSchemaName,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.store = schema.NewStore(builtinRegistry(), BuiltinSource)
	return b
}

func builtinRegistry() *schema.Registry {
	reg, err := schema.NewRegistry(schema.DefaultSchema())
	if err != nil {
		panic(fmt.Sprintf("app: built-in schema is invalid: %v", err))
	}
	return reg
}

// Store returns the schema store.
func (b *Bundlescope) Store() *schema.Store {
	return b.store
}

// Board returns the fetch status board.
func (b *Bundlescope) Board() *fetch.Board {
	return b.board
}

// Close stops all fetch trackers.
func (b *Bundlescope) Close() {
	b.board.Close()
}

// LoadSchemas reads a registry document, checks that every schema resolves
// and publishes it. The built-in default schema is added when the document
// does not define one, so documents can inherit from it.
// On failure the current registry stays in place.
func (b *Bundlescope) LoadSchemas(ctx context.Context, path string) (*schema.Snapshot, error) {
	reg, err := b.buildRegistry(path)
	if err != nil {
		b.logger.Error(ctx, "schema load failed", ports.F("source", path), ports.Err(err))
		return nil, err
	}

	snap := b.store.Swap(reg, path)
	b.logger.Info(ctx, "schemas loaded",
		ports.F("snapshot", snap.ID.String()),
		ports.F("source", path),
		ports.F("schemas", reg.Len()),
	)
	return snap, nil
}

// ValidateSchemas builds the registry at path without publishing it.
func (b *Bundlescope) ValidateSchemas(ctx context.Context, path string) (*schema.Registry, error) {
	reg, err := b.buildRegistry(path)
	if err != nil {
		return nil, err
	}
	b.logger.Debug(ctx, "schemas valid", ports.F("source", path), ports.F("schemas", reg.Len()))
	return reg, nil
}

func (b *Bundlescope) buildRegistry(path string) (*schema.Registry, error) {
	format, err := schema.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	doc, err := schema.ParseDocument(data, format, path)
	if err != nil {
		return nil, err
	}

	schemas := doc.Schemas
	if !definesSchema(schemas, schema.DefaultSchemaName) {
		schemas = append(schemas, schema.DefaultSchema())
	}

	reg, err := schema.NewRegistry(schemas...)
	if err != nil {
		return nil, err
	}
	if _, err := reg.ResolveAll(); err != nil {
		return nil, err
	}
	return reg, nil
}

func definesSchema(schemas []schema.Schema, name string) bool {
	for _, s := range schemas {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Resolve returns the effective rows of a schema in the current registry.
// An empty name selects the default schema.
func (b *Bundlescope) Resolve(ctx context.Context, name string) ([]schema.ResolvedRow, error) {
	if name == "" {
		name = b.defaultSchema
	}
	snap := b.store.Current()
	rows, err := snap.Registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	b.logger.Debug(ctx, "schema resolved",
		ports.F("schema", name),
		ports.F("snapshot", snap.ID.String()),
		ports.F("rows", len(rows)),
	)
	return rows, nil
}

// Rendered is a schema evaluated against one bundle.
type Rendered struct {
	Schema   string
	Snapshot uuid.UUID
	Fields   schema.Extraction
	// State is set when the bundle carries a recognised "state" value.
	State *StateReport
	// StateErr is set when the bundle carries a "state" value outside the
	// known vocabulary. It is always a *bundle.UnknownStateError.
	StateErr error
}

// Render evaluates a schema against bundle metadata. Field failures are
// logged and returned inline; only schema lookup errors fail the call.
func (b *Bundlescope) Render(ctx context.Context, schemaName string, metadata any) (*Rendered, error) {
	if schemaName == "" {
		schemaName = b.defaultSchema
	}
	snap := b.store.Current()
	rows, err := snap.Registry.Resolve(schemaName)
	if err != nil {
		return nil, err
	}

	out := &Rendered{
		Schema:   schemaName,
		Snapshot: snap.ID,
		Fields:   schema.NewExtractor(b.formatter).Extract(rows, metadata),
	}

	for _, fe := range out.Fields.Errors() {
		b.logger.Warn(ctx, "field render failed",
			ports.F("schema", schemaName),
			ports.F("field", fe.Field),
			ports.F("path", fe.Path),
			ports.Err(fe.Err),
		)
	}

	if raw, ok := stateOf(metadata); ok {
		report, err := ClassifyState(raw)
		if err != nil {
			out.StateErr = err
			b.logger.Warn(ctx, "bundle has unknown state",
				ports.F("state", raw),
				ports.Err(err),
			)
		} else {
			out.State = &report
		}
	}
	return out, nil
}

// stateOf returns the bundle's "state" value. A non-string value is
// returned in its display form so it classifies as unknown.
func stateOf(metadata any) (string, bool) {
	m, ok := metadata.(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := m["state"]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return schema.Stringify(v), true
}

// RenderFile decodes a bundle metadata file and renders it.
func (b *Bundlescope) RenderFile(ctx context.Context, schemaName, path string) (*Rendered, error) {
	format, err := schema.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := b.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	metadata, err := schema.DecodeMetadata(data, format)
	if err != nil {
		return nil, err
	}
	return b.Render(ctx, schemaName, metadata)
}

// StateReport classifies one bundle state.
type StateReport struct {
	State    bundle.State     `json:"state"`
	Label    string           `json:"label"`
	Final    bool             `json:"final"`
	Offline  bool             `json:"offline"`
	Lineages []bundle.Lineage `json:"lineages"`
	CanKill  bool             `json:"can_kill"`
}

// ClassifyState parses and classifies a state identifier.
func ClassifyState(s string) (StateReport, error) {
	state, err := bundle.ParseState(s)
	if err != nil {
		return StateReport{}, err
	}
	return classify(state), nil
}

// ClassifyAll classifies every state in lifecycle order.
func ClassifyAll() []StateReport {
	states := bundle.AllStates()
	out := make([]StateReport, 0, len(states))
	for _, s := range states {
		out = append(out, classify(s))
	}
	return out
}

func classify(s bundle.State) StateReport {
	return StateReport{
		State:    s,
		Label:    s.Label(),
		Final:    bundle.IsFinal(s),
		Offline:  bundle.IsOffline(s),
		Lineages: bundle.LineageOf(s),
		CanKill:  bundle.CanKill(s),
	}
}

// ReplayFetch applies events to the tracker of resource in order. It stops
// at the first unknown or rejected event and returns the transitions
// applied before it.
func (b *Bundlescope) ReplayFetch(ctx context.Context, resource string, events []string) ([]fetch.Transition, error) {
	applied := make([]fetch.Transition, 0, len(events))
	for _, raw := range events {
		if err := ctx.Err(); err != nil {
			return applied, err
		}

		event, err := fetch.ParseEvent(raw)
		if err != nil {
			return applied, err
		}

		tr, err := b.board.Fire(resource, event)
		if err != nil {
			b.logger.Debug(ctx, "fetch event rejected",
				ports.F("resource", resource),
				ports.F("status", string(b.board.Status(resource))),
				ports.F("event", raw),
			)
			return applied, err
		}

		b.logger.Debug(ctx, "fetch transition",
			ports.F("resource", resource),
			ports.F("from", string(tr.From)),
			ports.F("event", string(tr.Event)),
			ports.F("to", string(tr.To)),
		)
		applied = append(applied, tr)
	}
	return applied, nil
}

// CheckServerVersion compares server with the client version. An empty
// server falls back to the configured server version.
func (b *Bundlescope) CheckServerVersion(server string) (version.Check, error) {
	if server == "" {
		server = b.serverVersion
	}
	if server == "" {
		return version.Check{}, ErrNoServerVersion
	}
	return version.CheckServer(server)
}
