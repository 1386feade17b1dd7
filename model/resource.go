// model/resource.go
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
)

// Kind is the Arvados resource discriminant, e.g. "arvados#collection".
type Kind string

const (
	KindProject          Kind = "arvados#group"
	KindCollection       Kind = "arvados#collection"
	KindContainerRequest Kind = "arvados#containerRequest"
	KindContainer        Kind = "arvados#container"
	KindWorkflow         Kind = "arvados#workflow"
	KindUser             Kind = "arvados#user"
	KindLink             Kind = "arvados#link"
	// KindNone matches nothing when used in an is_a filter.
	KindNone    Kind = "arvados#none"
	KindUnknown Kind = ""
)

// KindProcess is the workbench name for container requests.
const KindProcess = KindContainerRequest

var kindByInfix = map[string]Kind{
	"j7d0g": KindProject,
	"4zz18": KindCollection,
	"xvhdp": KindContainerRequest,
	"dz642": KindContainer,
	"7fd4e": KindWorkflow,
	"tpzed": KindUser,
	"o0j2j": KindLink,
}

var endpointByKind = map[Kind]string{
	KindProject:          "groups",
	KindCollection:       "collections",
	KindContainerRequest: "container_requests",
	KindContainer:        "containers",
	KindWorkflow:         "workflows",
	KindUser:             "users",
	KindLink:             "links",
}

// KindFromUUID reads the object type infix of an Arvados uuid
// (zzzzz-4zz18-0123456789abcde).
func KindFromUUID(uuid string) Kind {
	parts := strings.Split(uuid, "-")
	if len(parts) != 3 {
		return KindUnknown
	}
	return kindByInfix[parts[1]]
}

// ClusterFromUUID returns the five character cluster prefix of a uuid.
func ClusterFromUUID(uuid string) string {
	if i := strings.IndexByte(uuid, '-'); i > 0 {
		return uuid[:i]
	}
	return ""
}

// Endpoint is the REST collection serving resources of this kind.
func (k Kind) Endpoint() string {
	return endpointByKind[k]
}

// Container and container request states
const (
	ContainerStateQueued    = "Queued"
	ContainerStateLocked    = "Locked"
	ContainerStateRunning   = "Running"
	ContainerStateComplete  = "Complete"
	ContainerStateCancelled = "Cancelled"

	ContainerRequestStateUncommitted = "Uncommitted"
	ContainerRequestStateCommitted   = "Committed"
	ContainerRequestStateFinal       = "Final"
)

// Collection type property values (properties.type)
const (
	CollectionTypeGeneral      = "general"
	CollectionTypeOutput       = "output"
	CollectionTypeLog          = "log"
	CollectionTypeIntermediate = "intermediate"
)

// ResourceHeader carries the attributes every Arvados resource has.
type ResourceHeader struct {
	UUID       string    `json:"uuid"`
	OwnerUUID  string    `json:"owner_uuid"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name,omitempty"`
	Etag       string    `json:"etag,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Header returns the common attributes of the resource.
func (h ResourceHeader) Header() ResourceHeader { return h }

func (ResourceHeader) isResource() {}

// Resource is implemented by exactly the concrete kinds below; switch on the
// concrete type to consume one.
type Resource interface {
	Header() ResourceHeader
	isResource()
}

type Group struct {
	ResourceHeader
	GroupClass  string         `json:"group_class"`
	Description string         `json:"description,omitempty"`
	IsTrashed   bool           `json:"is_trashed"`
	TrashAt     *time.Time     `json:"trash_at,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

type Collection struct {
	ResourceHeader
	PortableDataHash   string         `json:"portable_data_hash"`
	Description        string         `json:"description,omitempty"`
	FileCount          int            `json:"file_count"`
	FileSizeTotal      int64          `json:"file_size_total"`
	ReplicationDesired *int           `json:"replication_desired,omitempty"`
	Version            int            `json:"version"`
	CurrentVersionUUID string         `json:"current_version_uuid,omitempty"`
	IsTrashed          bool           `json:"is_trashed"`
	Properties         map[string]any `json:"properties,omitempty"`
}

type ContainerRequest struct {
	ResourceHeader
	State                   string         `json:"state"`
	Priority                int            `json:"priority"`
	ContainerUUID           *string        `json:"container_uuid"`
	RequestingContainerUUID *string        `json:"requesting_container_uuid"`
	OutputUUID              *string        `json:"output_uuid,omitempty"`
	LogUUID                 *string        `json:"log_uuid,omitempty"`
	Description             string         `json:"description,omitempty"`
	Properties              map[string]any `json:"properties,omitempty"`
}

type Container struct {
	ResourceHeader
	State      string     `json:"state"`
	ExitCode   *int       `json:"exit_code"`
	Priority   int        `json:"priority"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Output     *string    `json:"output,omitempty"`
	Log        *string    `json:"log,omitempty"`
}

type Workflow struct {
	ResourceHeader
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
}

type User struct {
	ResourceHeader
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
}

type Link struct {
	ResourceHeader
	LinkClass  string         `json:"link_class"`
	HeadUUID   string         `json:"head_uuid"`
	TailUUID   string         `json:"tail_uuid"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Unknown keeps resources of kinds this service does not model. The original
// document is written back unchanged.
type Unknown struct {
	ResourceHeader
	Raw json.RawMessage `json:"-"`
}

func (u *Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	return json.Marshal(u.ResourceHeader)
}

var (
	_ Resource = &Group{}
	_ Resource = &Collection{}
	_ Resource = &ContainerRequest{}
	_ Resource = &Container{}
	_ Resource = &Workflow{}
	_ Resource = &User{}
	_ Resource = &Link{}
	_ Resource = &Unknown{}
)

// DecodeResource decodes one entity from the API. The kind field selects the
// concrete type; entities without one fall back to the uuid infix.
func DecodeResource(raw json.RawMessage) (Resource, error) {
	var header ResourceHeader
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", wb_errors.ErrInvalidResourceData, err)
	}
	if header.UUID == "" {
		return nil, fmt.Errorf("%w: missing uuid", wb_errors.ErrInvalidResourceData)
	}
	kind := header.Kind
	if kind == KindUnknown {
		kind = KindFromUUID(header.UUID)
	}

	var res Resource
	switch kind {
	case KindProject:
		res = &Group{}
	case KindCollection:
		res = &Collection{}
	case KindContainerRequest:
		res = &ContainerRequest{}
	case KindContainer:
		res = &Container{}
	case KindWorkflow:
		res = &Workflow{}
	case KindUser:
		res = &User{}
	case KindLink:
		res = &Link{}
	default:
		return &Unknown{ResourceHeader: header, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
	if err := json.Unmarshal(raw, res); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", wb_errors.ErrInvalidResourceData, header.UUID, err)
	}
	setKind(res, kind)
	return res, nil
}

// DecodeResources decodes a list of entities, stopping at the first bad one.
func DecodeResources(raws []json.RawMessage) ([]Resource, error) {
	out := make([]Resource, 0, len(raws))
	for _, raw := range raws {
		res, err := DecodeResource(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func setKind(res Resource, kind Kind) {
	switch r := res.(type) {
	case *Group:
		r.Kind = kind
	case *Collection:
		r.Kind = kind
	case *ContainerRequest:
		r.Kind = kind
	case *Container:
		r.Kind = kind
	case *Workflow:
		r.Kind = kind
	case *User:
		r.Kind = kind
	case *Link:
		r.Kind = kind
	case *Unknown:
		r.Kind = kind
	}
}

// UUIDs returns the uuids of resources in order.
func UUIDs(resources []Resource) []string {
	uuids := make([]string, 0, len(resources))
	for _, r := range resources {
		uuids = append(uuids, r.Header().UUID)
	}
	return uuids
}
