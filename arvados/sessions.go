// arvados/sessions.go
package arvados

import (
	"fmt"
	"sort"

	"github.com/dev-mohitbeniwal/workbench/config"
	wb_errors "github.com/dev-mohitbeniwal/workbench/errors"
	"github.com/dev-mohitbeniwal/workbench/model"
)

// Sessions holds the local cluster session and the federated remotes.
type Sessions struct {
	local   API
	remotes map[string]API
}

func NewSessions(local API, remotes ...API) *Sessions {
	s := &Sessions{local: local, remotes: make(map[string]API)}
	for _, r := range remotes {
		if r == nil || r.ClusterID() == local.ClusterID() {
			continue
		}
		s.remotes[r.ClusterID()] = r
	}
	return s
}

// SessionsFromConfig builds one client per configured cluster.
func SessionsFromConfig(cfg config.ArvadosConfiguration) *Sessions {
	local := NewClient(Options{
		ClusterID:         cfg.ClusterID,
		APIHost:           cfg.APIHost,
		Token:             cfg.Token,
		Insecure:          cfg.Insecure,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Timeout:           cfg.Timeout,
	})
	var remotes []API
	for id, r := range cfg.Remotes {
		token := r.Token
		if token == "" {
			token = cfg.Token
		}
		remotes = append(remotes, NewClient(Options{
			ClusterID:         id,
			APIHost:           r.APIHost,
			Token:             token,
			Insecure:          r.Insecure,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
			Timeout:           cfg.Timeout,
		}))
	}
	return NewSessions(local, remotes...)
}

func (s *Sessions) Local() API {
	return s.local
}

// Get returns the session of a cluster id. The local cluster matches both
// its id and the empty string.
func (s *Sessions) Get(clusterID string) (API, error) {
	if clusterID == "" || clusterID == s.local.ClusterID() {
		return s.local, nil
	}
	if r, ok := s.remotes[clusterID]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", wb_errors.ErrUnknownCluster, clusterID)
}

// All returns the local session followed by the remotes sorted by cluster id.
func (s *Sessions) All() []API {
	ids := make([]string, 0, len(s.remotes))
	for id := range s.remotes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []API{s.local}
	for _, id := range ids {
		out = append(out, s.remotes[id])
	}
	return out
}

// Search returns the sessions a search should fan out to. A cluster id
// restricts the search to that one session.
func (s *Sessions) Search(clusterID string) ([]API, error) {
	if clusterID == "" {
		return s.All(), nil
	}
	api, err := s.Get(clusterID)
	if err != nil {
		return nil, err
	}
	return []API{api}, nil
}

// ForUUID picks the session owning a uuid by its cluster prefix, falling back
// to the local session.
func (s *Sessions) ForUUID(uuid string) API {
	if r, ok := s.remotes[model.ClusterFromUUID(uuid)]; ok {
		return r
	}
	return s.local
}
