package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"proposalScope/internal/model"
)

// Store provides Postgres persistence for graph artifacts.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveGraph replaces the stored graph for the artifact's trace id. The
// header row is upserted and the node and edge rows are rewritten, all
// in one batch so a re-analysis never leaves rows from the previous
// run behind.
func (s *Store) SaveGraph(ctx context.Context, artifact *model.GraphArtifact) error {
	if artifact.TraceID == "" {
		return fmt.Errorf("trace id required")
	}

	centralNodes, err := json.Marshal(artifact.Metrics.CentralNodes)
	if err != nil {
		return fmt.Errorf("marshal central nodes: %w", err)
	}
	warnings, err := json.Marshal(artifact.Warnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	originFrom, originTo := "", ""
	if artifact.Origin != nil {
		originFrom = artifact.Origin.From
		originTo = artifact.Origin.To
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM trace_graph_edges WHERE trace_id = $1`, artifact.TraceID)
	batch.Queue(`DELETE FROM trace_graph_nodes WHERE trace_id = $1`, artifact.TraceID)
	batch.Queue(`
		INSERT INTO trace_graphs (
			trace_id, generated_at, origin_from, origin_to,
			node_count, edge_count, graph_depth, graph_breadth, max_call_depth,
			central_nodes, description, warnings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		ON CONFLICT (trace_id)
		DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			origin_from = EXCLUDED.origin_from,
			origin_to = EXCLUDED.origin_to,
			node_count = EXCLUDED.node_count,
			edge_count = EXCLUDED.edge_count,
			graph_depth = EXCLUDED.graph_depth,
			graph_breadth = EXCLUDED.graph_breadth,
			max_call_depth = EXCLUDED.max_call_depth,
			central_nodes = EXCLUDED.central_nodes,
			description = EXCLUDED.description,
			warnings = EXCLUDED.warnings,
			updated_at = now()
	`,
		artifact.TraceID,
		artifact.GeneratedAt,
		originFrom,
		originTo,
		artifact.Metrics.Nodes,
		artifact.Metrics.Edges,
		artifact.Metrics.Depth,
		artifact.Metrics.Breadth,
		artifact.Metrics.MaxCallDepth,
		centralNodes,
		artifact.Description,
		warnings,
	)

	for seq, node := range artifact.Nodes {
		batch.Queue(`
			INSERT INTO trace_graph_nodes (
				trace_id, seq, address, label, in_degree, out_degree
			) VALUES ($1, $2, $3, $4, $5, $6)
		`,
			artifact.TraceID,
			seq,
			node.Address,
			node.Label,
			node.InDegree,
			node.OutDegree,
		)
	}

	for seq, edge := range artifact.Edges {
		batch.Queue(`
			INSERT INTO trace_graph_edges (
				trace_id, seq, from_address, to_address, kind, value,
				function, selector, signature, depth, gas, gas_used, error
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`,
			artifact.TraceID,
			seq,
			edge.From,
			edge.To,
			edge.Kind.String(),
			edge.Value,
			edge.Function,
			edge.Selector,
			edge.Signature,
			edge.Depth,
			int64(edge.Gas),
			int64(edge.GasUsed),
			edge.Error,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadGraph reads the stored artifact for a trace id. The bool result
// reports whether the trace was found.
func (s *Store) LoadGraph(ctx context.Context, traceID string) (*model.GraphArtifact, bool, error) {
	if traceID == "" {
		return nil, false, fmt.Errorf("trace id required")
	}

	artifact := &model.GraphArtifact{TraceID: traceID}
	var (
		originFrom   string
		originTo     string
		centralNodes []byte
		warnings     []byte
	)
	row := s.pool.QueryRow(ctx, `
		SELECT generated_at, origin_from, origin_to,
			node_count, edge_count, graph_depth, graph_breadth, max_call_depth,
			central_nodes, description, warnings
		FROM trace_graphs WHERE trace_id = $1
	`, traceID)
	err := row.Scan(
		&artifact.GeneratedAt,
		&originFrom,
		&originTo,
		&artifact.Metrics.Nodes,
		&artifact.Metrics.Edges,
		&artifact.Metrics.Depth,
		&artifact.Metrics.Breadth,
		&artifact.Metrics.MaxCallDepth,
		&centralNodes,
		&artifact.Description,
		&warnings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if originFrom != "" || originTo != "" {
		artifact.Origin = &model.CallEndpoint{From: originFrom, To: originTo}
	}
	if len(centralNodes) > 0 {
		if err := json.Unmarshal(centralNodes, &artifact.Metrics.CentralNodes); err != nil {
			return nil, false, fmt.Errorf("parse central nodes: %w", err)
		}
	}
	if len(warnings) > 0 {
		if err := json.Unmarshal(warnings, &artifact.Warnings); err != nil {
			return nil, false, fmt.Errorf("parse warnings: %w", err)
		}
	}

	if err := s.loadNodes(ctx, artifact); err != nil {
		return nil, false, err
	}
	if err := s.loadEdges(ctx, artifact); err != nil {
		return nil, false, err
	}
	return artifact, true, nil
}

func (s *Store) loadNodes(ctx context.Context, artifact *model.GraphArtifact) error {
	rows, err := s.pool.Query(ctx, `
		SELECT address, label, in_degree, out_degree
		FROM trace_graph_nodes WHERE trace_id = $1 ORDER BY seq
	`, artifact.TraceID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var node model.ArtifactNode
		if err := rows.Scan(&node.Address, &node.Label, &node.InDegree, &node.OutDegree); err != nil {
			return err
		}
		artifact.Nodes = append(artifact.Nodes, node)
	}
	return rows.Err()
}

func (s *Store) loadEdges(ctx context.Context, artifact *model.GraphArtifact) error {
	rows, err := s.pool.Query(ctx, `
		SELECT from_address, to_address, kind, value::text,
			function, selector, signature, depth, gas, gas_used, error
		FROM trace_graph_edges WHERE trace_id = $1 ORDER BY seq
	`, artifact.TraceID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			edge    model.ArtifactEdge
			kind    string
			gas     int64
			gasUsed int64
		)
		err := rows.Scan(
			&edge.From,
			&edge.To,
			&kind,
			&edge.Value,
			&edge.Function,
			&edge.Selector,
			&edge.Signature,
			&edge.Depth,
			&gas,
			&gasUsed,
			&edge.Error,
		)
		if err != nil {
			return err
		}
		edge.Kind = model.ParseCallKind(kind)
		edge.Gas = uint64(gas)
		edge.GasUsed = uint64(gasUsed)
		artifact.Edges = append(artifact.Edges, edge)
	}
	return rows.Err()
}
