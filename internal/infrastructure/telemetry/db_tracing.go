package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing attaches the otelgorm plugin to the GORM instance so every
// query produces a child span of the request trace. Query variables are never
// recorded in spans. No-op when telemetry is disabled.
func (tp *TracerProvider) RegisterDBTracing(db *gorm.DB, dbName string) error {
	if !tp.enabled {
		tp.logger.Debug("Telemetry disabled, skipping database tracing")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	if err := registerSpanEnrichment(db); err != nil {
		return err
	}

	tp.logger.Info("Database tracing enabled", zap.String("db_name", dbName))
	return nil
}

// registerSpanEnrichment adds after-callbacks that annotate the query span
// with affected row counts and mark real errors. ErrRecordNotFound is an
// expected outcome and stays off the span.
func registerSpanEnrichment(db *gorm.DB) error {
	enrich := func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if span == nil || !span.IsRecording() {
			return
		}
		if db.Statement.RowsAffected >= 0 {
			span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		}
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}
	}

	if err := db.Callback().Create().After("gorm:create").Register("otel_enrich:create", enrich); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("otel_enrich:query", enrich); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("otel_enrich:update", enrich); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("otel_enrich:delete", enrich); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("otel_enrich:row", enrich); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("otel_enrich:raw", enrich); err != nil {
		return err
	}
	return nil
}
