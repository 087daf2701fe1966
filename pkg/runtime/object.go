package runtime

type KindAccessor interface {
	GetKind() string
}

// Object is the common interface of all scheme managed
// element types. Elements are identified by a kind name
// used to select the Go type on decoding.
type Object interface {
	KindAccessor
	SetKind(string)
}

type ObjectMeta struct {
	Kind string `json:"kind"`
}

var _ Object = (*ObjectMeta)(nil)

func (o *ObjectMeta) GetKind() string {
	return o.Kind
}

func (o *ObjectMeta) SetKind(k string) {
	o.Kind = k
}
