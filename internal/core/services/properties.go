package services

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/clinidocs/docrouter/internal/core/domain"
	"github.com/clinidocs/docrouter/internal/logger"
)

// RoutingPropertiesKey is the property-bag key holding the serialized
// metadata snapshot a document carried before it reached the drop-off
// library.
const RoutingPropertiesKey = "_vti_RoutingExistingProperties"

// skippedPropertyNames are platform bookkeeping keys never treated as
// document metadata.
var skippedPropertyNames = map[string]struct{}{
	"vti_author":     {},
	"vti_modifiedby": {},
	"vti_title":      {},
	"ContentTypeId":  {},
}

// propertiesDoc mirrors the serialized property-bag layout: a flat list
// of three-part property nodes.
type propertiesDoc struct {
	XMLName    xml.Name       `xml:"Properties"`
	Properties []propertyNode `xml:"Property"`
}

type propertyNode struct {
	Name  string `xml:"Name"`
	Type  string `xml:"Type"`
	Value string `xml:"Value"`
}

// PropertyReader parses the routing property bag into lookup nodes and
// matches them against a destination schema.
type PropertyReader struct {
	log logger.Logger
}

// NewPropertyReader creates a PropertyReader.
func NewPropertyReader(log logger.Logger) *PropertyReader {
	return &PropertyReader{log: log}
}

// Read parses the serialized property bag. Nodes missing any of their
// three parts, platform bookkeeping keys, display-only entries, and the
// protected system fields are filtered out.
func (r *PropertyReader) Read(raw string) ([]domain.LookupNode, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	// Self-closing value elements appear in both spellings and confuse
	// downstream consumers of the snapshot; normalize them first.
	raw = strings.ReplaceAll(raw, "<Value/>", "<Value></Value>")
	raw = strings.ReplaceAll(raw, "<Value />", "<Value></Value>")

	var doc propertiesDoc
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling property bag: %w", err)
	}

	var nodes []domain.LookupNode
	for _, p := range doc.Properties {
		if p.Name == "" || p.Type == "" || p.Value == "" {
			continue
		}
		if !keepProperty(p) {
			continue
		}
		node := domain.NewLookupNode(p.Name, p.Value, p.Type)
		switch node.Kind() {
		case domain.KindAttachments, domain.KindFile, domain.KindComputed:
			continue
		}
		switch node.CamelCaseName {
		case "Name", "SignaturesStatus":
			continue
		}
		nodes = append(nodes, node)
	}
	r.log.Low("property bag yielded %d usable nodes", len(nodes))
	return nodes, nil
}

// keepProperty applies the raw-name filters: bookkeeping keys, vti
// prefixes, display-only entries, taxonomy shadows, and the protected
// system ids are dropped.
func keepProperty(p propertyNode) bool {
	name := strings.Split(p.Name, ";")[0]
	if _, skip := skippedPropertyNames[name]; skip {
		return false
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "vti") || strings.HasPrefix(lower, "_vti") {
		return false
	}
	if strings.Contains(lower, "display") {
		return false
	}
	if strings.HasPrefix(name, "TaxCatchAll") {
		return false
	}
	return !domain.IsProtectedInternalName(name)
}

// Match joins the parsed nodes to a destination schema by normalized
// title. The returned map keys values by field internal name; nodes no
// field claims come back separately as schema-extension candidates.
func (r *PropertyReader) Match(nodes []domain.LookupNode, fields []domain.Field) (map[string]string, []domain.LookupNode) {
	matched := make(map[string]string)
	var unmatched []domain.LookupNode
	for _, node := range nodes {
		field, ok := findFieldForNode(node, fields)
		if !ok {
			unmatched = append(unmatched, node)
			continue
		}
		if _, taken := matched[field.InternalName]; taken {
			continue
		}
		matched[field.InternalName] = node.Value
	}
	return matched, unmatched
}

// Candidates proposes field definitions for unmatched nodes: the
// camel-case name expanded back into a spaced title, with the node's
// declared kind.
func (r *PropertyReader) Candidates(unmatched []domain.LookupNode) []domain.Field {
	candidates := make([]domain.Field, 0, len(unmatched))
	for _, node := range unmatched {
		candidates = append(candidates, domain.Field{
			Title:        node.SentenceName(),
			InternalName: node.CamelCaseName,
			Kind:         node.Kind(),
		})
	}
	return candidates
}

func findFieldForNode(node domain.LookupNode, fields []domain.Field) (domain.Field, bool) {
	for _, f := range fields {
		if node.MatchesTitle(f.Title) || node.CamelCaseName == f.InternalName {
			return f, true
		}
	}
	return domain.Field{}, false
}
