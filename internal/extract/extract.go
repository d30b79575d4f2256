// Package extract parses a PowerCenter repository XML export into the
// normalized entity model. Extraction is tolerant: missing attributes
// get named defaults, and only a document that fails to parse as XML at
// all is treated as an extraction failure.
package extract

import (
	"encoding/xml"
	"strings"

	"etlmap/internal/errors"
	"etlmap/internal/model"
)

// node is a schema-agnostic XML tree node. Entities are matched by tag
// anywhere in the tree, not just as direct children, so exports that
// nest definitions inside FOLDER or other containers still extract.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

// attr returns the named attribute value and whether it was present.
func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// attrDefault returns the named attribute value or a default.
func (n *node) attrDefault(name, def string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return def
}

// descendants collects all nodes with the given tag, in document order.
func (n *node) descendants(tag string) []*node {
	var out []*node
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Local == tag {
			out = append(out, child)
		}
		out = append(out, child.descendants(tag)...)
	}
	return out
}

// Extract parses the raw document and populates the entity model.
// A document that is not well-formed XML returns empty entity
// collections together with a PARSE_FAILED error; callers record the
// error and continue with the empty set.
func Extract(rawDocument string) (*model.Entities, error) {
	entities := model.NewEntities()

	var root node
	if err := xml.Unmarshal([]byte(rawDocument), &root); err != nil {
		return entities, errors.Wrap(errors.ParseFailed, "XML parsing error", err)
	}

	entities.Repository = model.RepositoryInfo{
		Name:    root.attrDefault("NAME", model.UnknownName),
		Version: root.attrDefault("VERSION", model.UnknownName),
	}

	for _, src := range root.descendants("SOURCE") {
		entities.Sources = append(entities.Sources, model.Source{
			Name:       src.attrDefault("NAME", model.UnknownName),
			Type:       src.attrDefault("DATABASETYPE", ""),
			Connection: src.attrDefault("OWNERNAME", ""),
			Columns:    fieldNames(src, "SOURCEFIELD"),
		})
	}

	for _, tgt := range root.descendants("TARGET") {
		entities.Targets = append(entities.Targets, model.Target{
			Name:       tgt.attrDefault("NAME", model.UnknownName),
			Type:       tgt.attrDefault("DATABASETYPE", ""),
			Connection: tgt.attrDefault("OWNERNAME", ""),
			Columns:    fieldNames(tgt, "TARGETFIELD"),
		})
	}

	for _, trans := range root.descendants("TRANSFORMATION") {
		t := model.Transformation{
			Name:        trans.attrDefault("NAME", model.UnknownName),
			Kind:        trans.attrDefault("TYPE", ""),
			Description: trans.attrDefault("DESCRIPTION", ""),
			InputPorts:  []string{},
			OutputPorts: []string{},
		}
		for _, port := range trans.descendants("TRANSFORMFIELD") {
			name := port.attrDefault("NAME", "")
			switch strings.ToUpper(port.attrDefault("PORTTYPE", "")) {
			case "INPUT":
				t.InputPorts = append(t.InputPorts, name)
			case "OUTPUT":
				t.OutputPorts = append(t.OutputPorts, name)
			}
		}
		entities.Transformations = append(entities.Transformations, t)
	}

	for _, mapping := range root.descendants("MAPPING") {
		entities.Mappings = append(entities.Mappings, model.Mapping{
			Name:        mapping.attrDefault("NAME", model.UnknownName),
			Description: mapping.attrDefault("DESCRIPTION", ""),
			IsValid:     mapping.attrDefault("ISVALID", "YES") == "YES",
		})
	}

	return entities, nil
}

// fieldNames collects column names from all descendant field nodes.
func fieldNames(n *node, tag string) []string {
	fields := n.descendants(tag)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.attrDefault("NAME", ""))
	}
	return names
}
