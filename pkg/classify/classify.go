// Package classify inspects the content of a single YAML file: whether it
// already carries a yaml-language-server annotation, whether it starts with a
// document separator, and which resource type its first document declares.
package classify

import (
	"strings"

	"github.com/dippynark/kschema/pkg/utils"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/kustomize/kyaml/yaml"
)

const (
	// AnnotationMarker identifies an editor schema annotation comment
	AnnotationMarker = "yaml-language-server"
	// Separator is the YAML document start marker
	Separator = "---"

	// annotationWindow is the number of lines searched for an annotation,
	// not counting a leading separator line
	annotationWindow = 5
)

// Resource is the (apiVersion, kind) pair declared by a manifest.
type Resource struct {
	APIVersion string
	Kind       string
}

// GroupVersionKind parses the apiVersion into its group and version.
func (r Resource) GroupVersionKind() schema.GroupVersionKind {
	return schema.FromAPIVersionAndKind(r.APIVersion, r.Kind)
}

// HasAnnotation reports whether the marker appears within the first lines of
// content. A leading separator line does not use up the window, so adding a
// separator in front of an annotated file keeps it annotated.
func HasAnnotation(content []byte) bool {
	lines := utils.SplitLines(string(content))
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == Separator {
		lines = lines[1:]
	}
	if len(lines) > annotationWindow {
		lines = lines[:annotationWindow]
	}
	for _, line := range lines {
		if strings.Contains(line, AnnotationMarker) {
			return true
		}
	}
	return false
}

// StartsWithSeparator reports whether the first non-blank line is a document
// separator.
func StartsWithSeparator(content []byte) bool {
	lines := utils.SplitLines(string(content))
	i := utils.FirstNonBlankLine(lines)
	if i == -1 {
		return false
	}
	return strings.TrimSpace(lines[i]) == Separator
}

// Classify returns the resource type declared by the first YAML document in
// content, or nil if the document cannot be parsed, is not a mapping, or does
// not set both apiVersion and kind. Later documents are never decoded.
func Classify(content []byte) *Resource {
	// Parse only decodes the first document of the stream
	node, err := yaml.Parse(string(content))
	if err != nil || node == nil {
		return nil
	}
	if doc := node.Document(); doc == nil || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return nil
	}
	if node.YNode().Kind != yaml.MappingNode {
		return nil
	}

	apiVersion, err := utils.GetAPIVersion(node)
	if err != nil {
		return nil
	}
	kind, err := utils.GetKind(node)
	if err != nil {
		return nil
	}

	return &Resource{APIVersion: apiVersion, Kind: kind}
}
