// model/neo4j/relationships.go
package wb_neo4j

// Relationship Types
const (
	// RelOwnedBy points from a resource to the resource named by its owner_uuid
	RelOwnedBy = "OWNED_BY"
)
