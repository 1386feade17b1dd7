// dao/ownership_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/workbench/db"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
	wb_neo4j "github.com/dev-mohitbeniwal/workbench/model/neo4j"
)

// OwnershipDAO mirrors the owner_uuid edges of every resource the explorer
// has seen into Neo4j, so the project tree can list children locally.
type OwnershipDAO struct {
	Driver neo4j.DriverWithContext
}

func NewOwnershipDAO(driver neo4j.DriverWithContext) *OwnershipDAO {
	dao := &OwnershipDAO{Driver: driver}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Resource", zap.Error(err))
	}
	return dao
}

func (dao *OwnershipDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Resource uuid")
	query := `
    CREATE CONSTRAINT unique_resource_uuid IF NOT EXISTS
    FOR (r:` + wb_neo4j.LabelResource + `) REQUIRE r.` + wb_neo4j.PropUUID + ` IS UNIQUE
    `
	_, err := db.ExecuteWriteTransaction(ctx, dao.Driver, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Resource uuid", zap.Error(err))
		return err
	}
	return nil
}

// OwnershipRows flattens resources into query parameters. Resources without
// an owner still become nodes, just without an edge.
func OwnershipRows(resources []model.Resource) []map[string]any {
	rows := make([]map[string]any, 0, len(resources))
	for _, res := range resources {
		h := res.Header()
		if h.UUID == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"uuid":       h.UUID,
			"ownerUuid":  h.OwnerUUID,
			"kind":       string(h.Kind),
			"name":       h.Name,
			"createdAt":  h.CreatedAt.UTC(),
			"modifiedAt": h.ModifiedAt.UTC(),
		})
	}
	return rows
}

// mirrorQuery replaces the OWNED_BY edge of every row, so a resource moved
// to another project is only listed under its new owner.
var mirrorQuery = `
    UNWIND $rows AS row
    MERGE (r:` + wb_neo4j.LabelResource + ` {uuid: row.uuid})
    SET r.kind = row.kind, r.name = row.name,
        r.createdAt = row.createdAt, r.modifiedAt = row.modifiedAt
    WITH r, row
    OPTIONAL MATCH (r)-[old:` + wb_neo4j.RelOwnedBy + `]->(prev:` + wb_neo4j.LabelResource + `)
    WHERE prev.uuid <> row.ownerUuid
    DELETE old
    WITH DISTINCT r, row
    WHERE row.ownerUuid <> ''
    MERGE (o:` + wb_neo4j.LabelResource + ` {uuid: row.ownerUuid})
    MERGE (r)-[:` + wb_neo4j.RelOwnedBy + `]->(o)
    RETURN count(r) AS mirrored
    `

// MirrorResources upserts nodes and ownership edges for resources.
func (dao *OwnershipDAO) MirrorResources(ctx context.Context, resources []model.Resource) error {
	rows := OwnershipRows(resources)
	if len(rows) == 0 {
		return nil
	}
	start := time.Now()

	_, err := db.ExecuteWriteTransaction(ctx, dao.Driver, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, mirrorQuery, map[string]any{"rows": rows})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		logger.Error("Failed to mirror resource ownership",
			zap.Error(err),
			zap.Int("count", len(rows)),
			zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("%w: %v", wb_errors.ErrDatabaseOperation, err)
	}

	logger.Debug("Resource ownership mirrored",
		zap.Int("count", len(rows)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// ListChildren returns the uuids owned by ownerUUID, newest first.
func (dao *OwnershipDAO) ListChildren(ctx context.Context, ownerUUID string, limit int, offset int) ([]string, error) {
	start := time.Now()
	logger.Info("Listing children", zap.String("owner", ownerUUID), zap.Int("limit", limit), zap.Int("offset", offset))

	query := `
    MATCH (r:` + wb_neo4j.LabelResource + `)-[:` + wb_neo4j.RelOwnedBy + `]->(:` + wb_neo4j.LabelResource + ` {uuid: $owner})
    RETURN r.uuid AS uuid
    ORDER BY r.createdAt DESC, r.uuid
    SKIP $offset
    LIMIT $limit
    `
	result, err := db.ExecuteReadTransaction(ctx, dao.Driver, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"owner":  ownerUUID,
			"limit":  limit,
			"offset": offset,
		})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		uuids := make([]string, 0, len(records))
		for _, record := range records {
			if v, ok := record.Get("uuid"); ok {
				if s, ok := v.(string); ok {
					uuids = append(uuids, s)
				}
			}
		}
		return uuids, nil
	})
	if err != nil {
		logger.Error("Failed to execute list children query",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", wb_errors.ErrDatabaseOperation, err)
	}

	return result.([]string), nil
}
