// Package templatestore provides template definition stores over a file
// system (embedded or on-disk directory) and over an S3 bucket prefix. The
// S3 store is writable. The Postgres store lives in internal/repository/postgres.
package templatestore

import (
	"path"
	"sort"
	"strings"

	"docverify/internal/domain"
)

// validID rejects ids that could address anything other than a single
// definition directly under the store root.
func validID(id string) bool {
	if id == "" || id == "." || strings.Contains(id, "..") {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// splitDefinitionName returns the template id and format for a definition
// file name, or ok=false when the extension is not a template extension.
func splitDefinitionName(name string) (id string, format domain.TemplateFormat, ok bool) {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range domain.TemplateExtensions {
		if ext == e.Ext {
			id = strings.TrimSuffix(name, path.Ext(name))
			return id, e.Format, validID(id)
		}
	}
	return "", "", false
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
