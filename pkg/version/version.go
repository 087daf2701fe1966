// Package version computes stable digests for generator
// inputs. Digests are taken over the parsed, canonicalized
// content, so pure formatting changes of an input file do not
// change its digest.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/metagen/pkg/utils"
)

// DIGEST_LENGTH is the number of hex digits kept from the full
// sha256 digest for human readable stamps.
const DIGEST_LENGTH = 12

// Input identifies one generator input by role (model, super),
// name and content digest.
type Input struct {
	Role   string
	Name   string
	Digest string
}

// NewInput digests raw input file content. The content is
// parsed and canonicalized before hashing.
func NewInput(role, name string, data []byte) (Input, error) {
	var m map[string]interface{}

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return Input{}, fmt.Errorf("cannot digest %s %q: %w", role, name, err)
	}
	return Input{Role: role, Name: name, Digest: utils.HashData(m)[:DIGEST_LENGTH]}, nil
}

func (i Input) String() string {
	return fmt.Sprintf("%s/%s[%s]", i.Role, i.Name, i.Digest)
}

// Compose combines the digests of all inputs into one stable
// digest independent of the input order.
func Compose(inputs ...Input) string {
	var list []string

	for _, i := range inputs {
		list = append(list, i.String())
	}
	sort.Strings(list)
	h := sha256.Sum256([]byte(strings.Join(list, ",")))
	return hex.EncodeToString(h[:])[:DIGEST_LENGTH]
}
