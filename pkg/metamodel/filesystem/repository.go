package filesystem

import (
	"encoding/json"
	"fmt"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/utils"
)

// Repository reads model files from a virtual filesystem and
// provides resolved element graphs.
type Repository struct {
	scheme metamodel.Scheme
	fs     vfs.FileSystem
}

func NewRepository(fss ...vfs.FileSystem) *Repository {
	return &Repository{
		scheme: metamodel.DefaultScheme(),
		fs:     utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}
}

type modelFile struct {
	Items []json.RawMessage `json:"items"`
}

// LoadGraph reads and links the model file at the given path.
func (r *Repository) LoadGraph(path string) (*metamodel.Graph, error) {
	data, err := vfs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read model file %q: %w", path, err)
	}
	g, err := r.LoadData(data)
	if err != nil {
		return nil, fmt.Errorf("model file %q: %w", path, err)
	}
	return g, nil
}

// LoadData decodes and links a model from raw file content.
func (r *Repository) LoadData(data []byte) (*metamodel.Graph, error) {
	var file modelFile

	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("cannot unmarshal model: %w", err)
	}

	var elements []metamodel.Element
	for i, item := range file.Items {
		e, err := r.scheme.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		elements = append(elements, e)
	}
	return metamodel.NewGraph(elements)
}
