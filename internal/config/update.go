package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sitewatch/internal/errors"
)

// AddSite appends a site to the config file at path. YAML files are edited in
// place so existing comments and ordering survive; JSON files keep any keys
// sitewatch does not know about. A missing file is created with default settings.
// Adding a URL that is already watched is an error.
func AddSite(path string, site Site) error {
	site.Name = strings.TrimSpace(site.Name)
	site.URL = strings.TrimSpace(site.URL)
	if err := ValidateSite(site); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.Sites = []Site{site}
		return WriteConfig(path, cfg)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file "+path,
			"Check file permissions")
	}

	if isJSON(path) {
		data, err = addSiteJSON(data, site)
	} else {
		data, err = addSiteYAML(data, site)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file "+path,
			"Check file permissions")
	}
	return nil
}

// WriteConfig writes cfg to path, as JSON or YAML depending on the extension.
// Parent directories are created as needed.
func WriteConfig(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(jsonConfig(cfg), "", "  ")
		data = append(data, '\n')
	} else {
		data, err = encodeYAML(cfg)
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory "+filepath.Dir(path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file "+path,
			"Check file permissions")
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// jsonConfig mirrors the sites.json layout: interval in seconds, timeouts as strings.
func jsonConfig(cfg *Config) map[string]any {
	return map[string]any{
		"version":          cfg.Version,
		"refresh_interval": cfg.RefreshInterval,
		"max_workers":      cfg.MaxWorkers,
		"probe_timeout":    cfg.ProbeTimeout.String(),
		"task_timeout":     cfg.TaskTimeout.String(),
		"sites":            cfg.Sites,
	}
}

func encodeYAML(v any) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

func addSiteJSON(data []byte, site Site) ([]byte, error) {
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Check the file is valid JSON")
	}

	var sites []Site
	if raw, ok := doc["sites"]; ok {
		if err := json.Unmarshal(raw, &sites); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"'sites' must be a list of {\"name\", \"url\"} objects",
				"")
		}
	}
	if err := checkDuplicate(sites, site); err != nil {
		return nil, err
	}
	sites = append(sites, site)

	raw, err := json.Marshal(sites)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode sites", "")
	}
	doc["sites"] = raw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return append(out, '\n'), nil
}

func addSiteYAML(data []byte, site Site) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file",
			"Check the file is valid YAML")
	}

	// An empty file has no document node yet.
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New(errors.ErrConfig, "Invalid YAML document structure", "")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrConfig, "Expected a mapping at the top of the config file", "")
	}

	sitesNode := findMapValue(docNode, "sites")
	if sitesNode == nil || (sitesNode.Kind == yaml.ScalarNode && sitesNode.Tag == "!!null") {
		if sitesNode == nil {
			sitesNode = &yaml.Node{}
			docNode.Content = append(docNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "sites"},
				sitesNode)
		}
		*sitesNode = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	}
	if sitesNode.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrConfig, "'sites' must be a list", "")
	}

	var existing []Site
	if err := sitesNode.Decode(&existing); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"'sites' must be a list of name/url entries", "")
	}
	if err := checkDuplicate(existing, site); err != nil {
		return nil, err
	}

	entry := &yaml.Node{}
	if err := entry.Encode(site); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode site", "")
	}
	sitesNode.Content = append(sitesNode.Content, entry)

	out, err := encodeYAML(&root)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return out, nil
}

func checkDuplicate(sites []Site, site Site) error {
	key := normalizeURL(site.URL)
	for _, s := range sites {
		if normalizeURL(s.URL) == key {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s is already watched as '%s'", site.URL, s.Name),
				"Each URL can only be watched once.")
		}
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
