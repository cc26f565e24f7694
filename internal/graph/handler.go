package graph

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth ограничивает вложенность запросов.
const maxQueryDepth = 10

// panicLogger пишет паники резолверов в slog.
type panicLogger struct {
	log *slog.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error("graphql resolver panic", slog.String("panic", fmt.Sprint(value)))
}

// NewSchema разбирает встроенную схему и связывает её с резолвером.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	const op = "graph.NewSchema"

	schema, err := graphql.ParseSchema(schemaSDL, resolver,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{log: resolver.log}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return schema, nil
}

// NewHandler возвращает HTTP-обработчик POST /graphql.
func NewHandler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}
