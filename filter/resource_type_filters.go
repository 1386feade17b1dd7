// filter/resource_type_filters.go
package filter

import (
	"slices"

	"github.com/dev-mohitbeniwal/workbench/model"
)

// Object type filter names shown in the Type column
const (
	ObjectTypeProject    = "Project"
	ObjectTypeWorkflow   = "Workflow"
	ObjectTypeCollection = "Data collection"
	ObjectTypeDefinition = "Definition"

	GroupTypeProject     = "Project (normal)"
	GroupTypeFilterGroup = "Filter group"

	CollectionTypeGeneralFilter      = "General"
	CollectionTypeOutputFilter       = "Output"
	CollectionTypeLogFilter          = "Log"
	CollectionTypeIntermediateFilter = "Intermediate"

	ProcessTypeMain  = "Workflow Runs"
	ProcessTypeChild = "Workflow Steps"
)

// Process status filter names shown in the Status column
const (
	ProcessStatusAll       = "All"
	ProcessStatusRunning   = "Running"
	ProcessStatusFailed    = "Failed"
	ProcessStatusCompleted = "Completed"
	ProcessStatusCancelled = "Cancelled"
	ProcessStatusOnHold    = "On hold"
	ProcessStatusQueued    = "Queued"
)

var (
	objectTypes     = []string{ObjectTypeProject, ObjectTypeWorkflow, ObjectTypeCollection, ObjectTypeDefinition}
	groupTypes      = []string{GroupTypeProject, GroupTypeFilterGroup}
	collectionTypes = []string{CollectionTypeGeneralFilter, CollectionTypeOutputFilter, CollectionTypeLogFilter, CollectionTypeIntermediateFilter}
	processTypes    = []string{ProcessTypeMain, ProcessTypeChild}

	allCollectionTypeValues = []string{
		model.CollectionTypeGeneral, model.CollectionTypeOutput,
		model.CollectionTypeLog, model.CollectionTypeIntermediate,
	}
)

const collectionPropertiesPrefix = PrefixCollection + ".properties"

func node(id, parent string, selected bool) model.FilterNode {
	return model.FilterNode{ID: id, Parent: parent, Name: id, Selected: selected}
}

// InitialResourceTypeFilters is the Type column tree of panels that list
// processes alongside data.
func InitialResourceTypeFilters() model.FilterTree {
	return model.FilterTree{
		node(ObjectTypeProject, "", true),
		node(GroupTypeProject, ObjectTypeProject, true),
		node(GroupTypeFilterGroup, ObjectTypeProject, true),
		node(ObjectTypeWorkflow, "", false),
		node(ProcessTypeMain, ObjectTypeWorkflow, true),
		node(ProcessTypeChild, ObjectTypeWorkflow, false),
		node(ObjectTypeDefinition, ObjectTypeWorkflow, true),
		node(ObjectTypeCollection, "", true),
		node(CollectionTypeGeneralFilter, ObjectTypeCollection, true),
		node(CollectionTypeOutputFilter, ObjectTypeCollection, true),
		node(CollectionTypeIntermediateFilter, ObjectTypeCollection, false),
		node(CollectionTypeLogFilter, ObjectTypeCollection, false),
	}
}

// InitialDataResourceTypeFilters is the Type column tree of the project data
// tab, which never lists process runs.
func InitialDataResourceTypeFilters() model.FilterTree {
	return model.FilterTree{
		node(ObjectTypeProject, "", true),
		node(GroupTypeProject, ObjectTypeProject, true),
		node(GroupTypeFilterGroup, ObjectTypeProject, true),
		node(ObjectTypeWorkflow, "", true),
		node(ObjectTypeDefinition, ObjectTypeWorkflow, true),
		node(ObjectTypeCollection, "", true),
		node(CollectionTypeGeneralFilter, ObjectTypeCollection, true),
		node(CollectionTypeOutputFilter, ObjectTypeCollection, true),
		node(CollectionTypeIntermediateFilter, ObjectTypeCollection, false),
		node(CollectionTypeLogFilter, ObjectTypeCollection, false),
	}
}

func InitialProcessTypeFilters() model.FilterTree {
	return model.FilterTree{
		node(ProcessTypeMain, "", true),
		node(ProcessTypeChild, "", false),
	}
}

// InitialProcessStatusFilters is a single choice list; All is selected.
func InitialProcessStatusFilters() model.FilterTree {
	return model.FilterTree{
		node(ProcessStatusAll, "", true),
		node(ProcessStatusOnHold, "", false),
		node(ProcessStatusQueued, "", false),
		node(ProcessStatusRunning, "", false),
		node(ProcessStatusCompleted, "", false),
		node(ProcessStatusCancelled, "", false),
		node(ProcessStatusFailed, "", false),
	}
}

func matching(values []string, selected []string) []string {
	var out []string
	for _, id := range selected {
		if slices.Contains(values, id) {
			out = append(out, id)
		}
	}
	return out
}

func objectTypeKind(objectType string, dataOnly bool) model.Kind {
	switch objectType {
	case ObjectTypeProject:
		return model.KindProject
	case ObjectTypeWorkflow:
		if dataOnly {
			return model.KindWorkflow
		}
		return model.KindProcess
	case ObjectTypeCollection:
		return model.KindCollection
	case ObjectTypeDefinition:
		return model.KindWorkflow
	}
	return model.KindNone
}

// SerializeResourceTypeFilters turns a Type column tree into group contents
// filters. Selecting nothing emits is_a arvados#none, an explicit empty
// result, rather than dropping the restriction.
func SerializeResourceTypeFilters(tree model.FilterTree) Filters {
	b := NewBuilder()
	selected := tree.SelectedIDs()
	serializeObjectTypes(b, selected, false)
	serializeGroupTypes(b, selected)
	serializeCollectionTypes(b, selected)
	buildProcessTypeFilters(b, matching(processTypes, selected), PrefixProcess)
	return b.Filters()
}

// SerializeDataResourceTypeFilters is SerializeResourceTypeFilters for the
// data tab, where Workflow means registered workflow definitions.
func SerializeDataResourceTypeFilters(tree model.FilterTree) Filters {
	b := NewBuilder()
	selected := tree.SelectedIDs()
	serializeObjectTypes(b, selected, true)
	serializeGroupTypes(b, selected)
	serializeCollectionTypes(b, selected)
	return b.Filters()
}

// SerializeOnlyProcessTypeFilters serializes a process type tree for a
// container_requests list, without table prefixes.
func SerializeOnlyProcessTypeFilters(tree model.FilterTree) Filters {
	b := NewBuilder()
	buildProcessTypeFilters(b, matching(processTypes, tree.SelectedIDs()), "")
	return b.Filters()
}

func serializeObjectTypes(b *Builder, selected []string, dataOnly bool) {
	types := matching(objectTypes, selected)
	add := func(t string) {
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	if len(matching(groupTypes, selected)) > 0 {
		add(ObjectTypeProject)
	}
	if len(matching(collectionTypes, selected)) > 0 {
		add(ObjectTypeCollection)
	}
	if !dataOnly && len(matching(processTypes, selected)) > 0 {
		add(ObjectTypeWorkflow)
	}

	if len(types) == 0 {
		b.AddIsA("uuid", string(model.KindNone))
		return
	}
	var kinds []string
	for _, t := range types {
		k := string(objectTypeKind(t, dataOnly))
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	b.AddIsA("uuid", kinds...)
}

func serializeGroupTypes(b *Builder, selected []string) {
	filters := matching(groupTypes, selected)
	switch {
	case len(filters) == 0 || len(filters) == len(groupTypes):
	case slices.Contains(filters, GroupTypeProject):
		b.AddEqual("group_class", "project", PrefixProject)
	case slices.Contains(filters, GroupTypeFilterGroup):
		b.AddEqual("group_class", "filter", PrefixProject)
	}
}

func collectionTypeValue(name string) string {
	switch name {
	case CollectionTypeOutputFilter:
		return model.CollectionTypeOutput
	case CollectionTypeLogFilter:
		return model.CollectionTypeLog
	case CollectionTypeIntermediateFilter:
		return model.CollectionTypeIntermediate
	}
	return model.CollectionTypeGeneral
}

// General collections have no type property, so selecting General is
// expressed as "none of the unselected special types".
func serializeCollectionTypes(b *Builder, selected []string) {
	var values []string
	for _, f := range matching(collectionTypes, selected) {
		values = append(values, collectionTypeValue(f))
	}
	switch {
	case len(values) == 0 || len(values) == len(allCollectionTypeValues):
	case slices.Contains(values, model.CollectionTypeGeneral):
		var excluded []string
		for _, v := range allCollectionTypeValues {
			if v != model.CollectionTypeGeneral && !slices.Contains(values, v) {
				excluded = append(excluded, v)
			}
		}
		b.AddNotIn("type", excluded, collectionPropertiesPrefix)
	default:
		b.AddIn("type", values, collectionPropertiesPrefix)
	}
}

func buildProcessTypeFilters(b *Builder, filters []string, prefix string) {
	switch {
	case len(filters) == 0 || len(filters) == len(processTypes):
	case slices.Contains(filters, ProcessTypeMain):
		b.AddIsNull("requestingContainerUuid", prefix)
	case slices.Contains(filters, ProcessTypeChild):
		b.AddNotNull("requestingContainerUuid", prefix)
	}
}

// BuildProcessStatusFilters adds the container predicates behind one Status
// column choice. All, or anything unknown, adds nothing.
func BuildProcessStatusFilters(b *Builder, status string, prefix ...string) *Builder {
	switch status {
	case ProcessStatusOnHold:
		b.AddDistinct("state", model.ContainerRequestStateFinal, prefix...)
		b.AddEqual("priority", "0", prefix...)
		b.AddIn("container.state", []string{model.ContainerStateQueued, model.ContainerStateLocked}, prefix...)
	case ProcessStatusCompleted:
		b.AddEqual("container.state", model.ContainerStateComplete, prefix...)
		b.AddEqual("container.exitCode", "0", prefix...)
	case ProcessStatusFailed:
		b.AddEqual("container.state", model.ContainerStateComplete, prefix...)
		b.AddDistinct("container.exitCode", "0", prefix...)
	case ProcessStatusQueued:
		b.AddIn("container.state", []string{model.ContainerStateQueued, model.ContainerStateLocked}, prefix...)
		b.AddDistinct("priority", "0", prefix...)
	case ProcessStatusCancelled, ProcessStatusRunning:
		b.AddEqual("container.state", status, prefix...)
	}
	return b
}

// ProcessStatusFilters reads the Status column of a panel.
func ProcessStatusFilters(tree model.FilterTree, prefix ...string) Filters {
	status, _ := tree.FirstSelected()
	return BuildProcessStatusFilters(NewBuilder(), status, prefix...).Filters()
}
