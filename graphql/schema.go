package graphql

import (
	"github.com/wundergraph/graphql-core-engine/internal/astimport"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/introspection"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
	"github.com/wundergraph/graphql-core-engine/internal/xlog"
	"go.uber.org/zap"
)

// Schema is the built, read-only type-system graph (§3, §4.4).
type Schema = typesystem.Schema

// SchemaConfig is the programmatic schema constructor input (§4.4);
// NewSchema builds a Schema from hand-assembled Go Object/Interface/...
// values instead of from SDL text.
type SchemaConfig = typesystem.SchemaConfig

// NewSchema builds a Schema from a SchemaConfig assembled directly in
// Go (no SDL parsing involved), grafting the introspection meta-types
// onto its Query type the same way BuildSchema does for an SDL-sourced
// schema.
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	return introspection.BuildSchema(cfg)
}

// BuildSchema parses sdl as a type-system document and compiles it into
// an executable Schema with the introspection meta-types (`__schema`,
// `__type`, ...) grafted onto its Query type (§6 "build_schema").
func BuildSchema(sdl string) (*Schema, error) {
	return BuildSchemaWithLogger(sdl, xlog.Noop)
}

// BuildSchemaWithLogger is BuildSchema with diagnostic logging of each
// compile stage -- parse, SDL-to-config compilation, schema assembly --
// for a host that wants to see where a bad SDL document failed.
func BuildSchemaWithLogger(sdl string, logger xlog.Logger) (schema *Schema, err error) {
	if logger == nil {
		logger = xlog.Noop
	}
	// An undefined type name panics inside astimport (its field thunks
	// have no error return); report it as the error result instead.
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			logger.Error("schema assembly failed", zap.Error(e))
			schema, err = nil, e
		}
	}()
	doc, report := astparser.ParseTypeSystemDocument(source.New(sdl))
	if report.HasErrors() {
		logger.Error("schema parse failed", zap.Int("external_errors", len(report.ExternalErrors)))
		return nil, &report
	}
	cfg, err := astimport.BuildSchemaConfig(doc)
	if err != nil {
		logger.Error("schema config compilation failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("schema config compiled", zap.Int("types", len(cfg.Types)))
	schema, err = introspection.BuildSchema(cfg)
	if err != nil {
		logger.Error("schema assembly failed", zap.Error(err))
		return nil, err
	}
	return schema, nil
}
