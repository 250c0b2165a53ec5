package scheduler

import (
	"safecheck-backend/models"
	"strings"

	"github.com/tidwall/gjson"
)

// FilterVisible restricts the equipment catalogue to what the viewer may
// see, before projection runs. Unrestricted roles (or a missing viewer
// identity) see everything that has a safety frequency; the restricted
// safety-officer role sees only equipment whose authorized-officer set
// contains the viewer.
func (e *Engine) FilterVisible(catalogue []*models.Equipment, viewer models.ViewerContext) []*models.Equipment {
	restricted := viewer.Role.Restricted() && viewer.ViewerID != ""

	var visible []*models.Equipment
	for _, eq := range catalogue {
		if eq == nil || !eq.HasSchedule() {
			continue
		}
		if restricted && !contains(e.NormalizeOfficers(eq.AuthorizedOfficers), viewer.ViewerID) {
			continue
		}
		visible = append(visible, eq)
	}
	return visible
}

// NormalizeOfficers turns whatever shape the upstream store persisted the
// authorized-officers field in into a canonical identifier list. Three
// representations exist in stored data: a native string list, a
// JSON-encoded array string, and a comma-separated string. Unparsable input
// degrades to an empty set rather than failing the request: the equipment
// then stays invisible to restricted viewers but visible to unrestricted
// ones.
func (e *Engine) NormalizeOfficers(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		return compact(v)
	case []interface{}:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		return compact(ids)
	case string:
		return e.normalizeOfficerString(v)
	default:
		if e.log != nil {
			e.log.Warnf("authorized officers field has unexpected type %T, treating as empty", raw)
		}
		return nil
	}
}

// normalizeOfficerString tries a structured JSON-array parse first and
// falls back to comma splitting.
func (e *Engine) normalizeOfficerString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if gjson.Valid(s) {
		if parsed := gjson.Parse(s); parsed.IsArray() {
			var ids []string
			parsed.ForEach(func(_, value gjson.Result) bool {
				ids = append(ids, value.String())
				return true
			})
			return compact(ids)
		}
	}

	return compact(strings.Split(s, ","))
}

// compact trims whitespace and drops empty entries.
func compact(ids []string) []string {
	var out []string
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
