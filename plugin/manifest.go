package plugin

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// manifest is the content of a plugin file.
type manifest struct {
	Package string   `yaml:"package" hcl:"package,optional"`
	Classes []string `yaml:"classes" hcl:"classes,optional"`
}

type decoder func(fileName string, data []byte) (*manifest, error)

var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".hcl":  decodeHCL,
}

// IsManifest returns true if the file extension denotes a plugin file.
func IsManifest(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

func decodeYAML(_ string, data []byte) (*manifest, error) {
	m := &manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeHCL(fileName string, data []byte) (*manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, fileName)
	if diags.HasErrors() {
		return nil, diags
	}
	m := &manifest{}
	if diags := gohcl.DecodeBody(file.Body, nil, m); diags.HasErrors() {
		return nil, diags
	}
	return m, nil
}
