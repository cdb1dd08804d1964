package utils

import (
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/kustomize/kyaml/yaml"
)

func GetKind(node *yaml.RNode) (string, error) {
	kind, err := GetStringField(node, "kind")
	if err != nil {
		return "", err
	}

	if kind == "" {
		return "", errors.New("kind is empty")
	}

	return kind, nil
}

func GetAPIVersion(node *yaml.RNode) (string, error) {
	apiVersion, err := GetStringField(node, "apiVersion")
	if err != nil {
		return "", err
	}

	if apiVersion == "" {
		return "", errors.New("apiVersion is empty")
	}

	return apiVersion, nil
}

func GetStringField(node *yaml.RNode, fields ...string) (string, error) {

	valueNode, err := node.Pipe(lookupLast(fields...))
	if err != nil {
		return "", err
	}

	// Return empty string if value not found
	if valueNode == nil {
		return "", nil
	}

	// Nested mappings and sequences have no meaningful string value
	if valueNode.YNode().Kind != yaml.ScalarNode {
		return "", nil
	}

	// Treat `~` and `null` as unset
	if valueNode.YNode().ShortTag() == yaml.NodeTagNull {
		return "", nil
	}

	// Quotes are already stripped by the parser
	return strings.TrimSpace(valueNode.YNode().Value), nil
}

// lookupLast is like yaml.Lookup but takes the last of any duplicate keys,
// matching how most YAML loaders build a mapping
func lookupLast(fields ...string) yaml.FilterFunc {
	return func(rn *yaml.RNode) (*yaml.RNode, error) {
		current := rn.YNode()
		for _, field := range fields {
			if current == nil || current.Kind != yaml.MappingNode {
				return nil, nil
			}
			var match *yaml.Node
			for i := 0; i+1 < len(current.Content); i += 2 {
				if current.Content[i].Value == field {
					match = current.Content[i+1]
				}
			}
			current = match
		}
		if current == nil {
			return nil, nil
		}
		return yaml.NewRNode(current), nil
	}
}

// SplitLines splits content on newlines. Carriage returns are left in place.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// FirstNonBlankLine returns the index of the first line containing anything
// other than whitespace, or -1 if there is none.
func FirstNonBlankLine(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}
