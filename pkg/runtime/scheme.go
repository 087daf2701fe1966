package runtime

import (
	"sigs.k8s.io/yaml"
)

type KindExtractor func(data []byte) (string, error)

type accessorPointer[P any] interface {
	KindAccessor
	*P
}

func KindExtractorFor[O any, P accessorPointer[O]]() KindExtractor {
	return func(data []byte) (string, error) {
		var meta O

		err := yaml.Unmarshal(data, &meta)
		if err != nil {
			return "", err
		}
		return P(&meta).GetKind(), nil
	}
}

// Encoding provides object decoding for scheme kinds.
type Encoding[T Object] interface {
	SchemeTypes[T]

	Decode(data []byte) (T, error)
}

// Scheme is an encoding with registration.
type Scheme[E Object] interface {
	Encoding[E]
	TypeScheme[E]
}

type scheme[E Object] struct {
	types[E]
	kindExtractor KindExtractor
}

var _ Scheme[Object] = (*scheme[Object])(nil)

func NewYAMLScheme[E Object](e KindExtractor) Scheme[E] {
	return &scheme[E]{*NewTypeScheme[E](), e}
}

func (s *scheme[E]) Decode(data []byte) (E, error) {
	var _nil E

	k, err := s.kindExtractor(data)
	if err != nil {
		return _nil, err
	}

	v, err := s.CreateObject(k)
	if err != nil {
		return _nil, err
	}

	err = yaml.Unmarshal(data, v)
	if err != nil {
		return _nil, err
	}
	return v, nil
}
