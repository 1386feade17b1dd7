// model/neo4j/nodes.go
package wb_neo4j

// Node Labels
const (
	// LabelResource is attached to every mirrored Arvados resource
	LabelResource = "Resource"
)

// Node properties
const (
	PropUUID = "uuid"
)
