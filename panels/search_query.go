// panels/search_query.go
package panels

import (
	"regexp"
	"strings"

	"github.com/dev-mohitbeniwal/workbench/filter"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// Search bar keywords
const (
	KeywordType    = "type"
	KeywordCluster = "cluster"
	KeywordProject = "project"
	KeywordIs      = "is"
	KeywordFrom    = "from"
	KeywordTo      = "to"

	StateTrashed     = "trashed"
	StatePastVersion = "pastVersion"
)

var (
	queryToken   = regexp.MustCompile(`"[^"]*"|\S+`)
	keywordToken = regexp.MustCompile(`^([a-zA-Z]+):(.+)$`)
)

// SearchQuery is a search bar value split into free text and keywords, e.g.
// `reads type:arvados#collection cluster:zzzzz is:trashed`.
type SearchQuery struct {
	SearchValue  string
	Type         model.Kind
	Cluster      string
	ProjectUUID  string
	InTrash      bool
	PastVersions bool
	DateFrom     string
	DateTo       string
}

var typeAliases = map[string]model.Kind{
	"project":    model.KindProject,
	"group":      model.KindProject,
	"collection": model.KindCollection,
	"process":    model.KindProcess,
	"workflow":   model.KindWorkflow,
}

// ParseQuery splits a search value. Unknown keywords and quoted phrases stay
// part of the free text.
func ParseQuery(query string) SearchQuery {
	var q SearchQuery
	var text []string
	for _, tok := range queryToken.FindAllString(query, -1) {
		m := keywordToken.FindStringSubmatch(tok)
		if m == nil {
			text = append(text, tok)
			continue
		}
		value := strings.Trim(m[2], `"`)
		switch m[1] {
		case KeywordType:
			if kind, ok := typeAliases[strings.ToLower(value)]; ok {
				q.Type = kind
			} else {
				q.Type = model.Kind(value)
			}
		case KeywordCluster:
			q.Cluster = value
		case KeywordProject:
			q.ProjectUUID = value
		case KeywordFrom:
			q.DateFrom = value
		case KeywordTo:
			q.DateTo = value
		case KeywordIs:
			switch value {
			case StateTrashed:
				q.InTrash = true
			case StatePastVersion:
				q.PastVersions = true
			default:
				text = append(text, tok)
			}
		default:
			text = append(text, tok)
		}
	}
	q.SearchValue = strings.Join(text, " ")
	return q
}

// Filters renders the query as group contents filters. Without a type the
// search covers projects, collections and processes.
func (q SearchQuery) Filters() filter.Filters {
	b := filter.NewBuilder().
		AddFullTextSearch(q.SearchValue).
		AddEqual("ownerUuid", q.ProjectUUID).
		AddGte("modifiedAt", q.DateFrom).
		AddLte("modifiedAt", q.DateTo)

	if q.Type != model.KindUnknown {
		b.AddIsA("uuid", string(q.Type))
	} else {
		b.AddIsA("uuid", string(model.KindProject), string(model.KindCollection), string(model.KindProcess))
	}
	return b.Filters()
}
