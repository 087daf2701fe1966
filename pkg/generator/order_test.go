package generator_test

import (
	"fmt"
	"math/rand"
	"strings"

	. "github.com/mandelsoft/metagen/pkg/metamodel/testtypes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/goombaio/namegenerator"

	me "github.com/mandelsoft/metagen/pkg/generator"
	"github.com/mandelsoft/metagen/pkg/metamodel"
)

// declarationOrder extracts the declared class names from the
// output line stream.
func declarationOrder(lines []string) []string {
	var names []string
	for _, l := range lines {
		if strings.HasPrefix(l, "class ") {
			names = append(names, l[len("class "):strings.Index(l, "(")])
		}
	}
	return names
}

var _ = Describe("class ordering", func() {
	It("keeps the model order for unrelated classes", func() {
		g := graph(
			NewClass("C1", "Zeta"),
			NewClass("C2", "Alpha"),
			NewClass("C3", "Mu"),
		)

		Expect(declarationOrder(generate(g))).To(Equal([]string{"Zeta", "Alpha", "Mu"}))
	})

	It("declares transitive bases first", func() {
		g := graph(
			NewClass("C1", "Leaf"),
			NewClass("C2", "Mid"),
			NewClass("C3", "Root"),
			NewGeneralization("g1", "C1", "C2"),
			NewGeneralization("g2", "C2", "C3"),
		)

		Expect(declarationOrder(generate(g))).To(Equal([]string{"Root", "Mid", "Leaf"}))
	})

	It("orders embedded bases like generalizations", func() {
		e1 := NewEnd("e1", "baseClass", "CM")
		e2 := NewEnd("e2", "", "CS")
		g := graph(
			NewClass("CS", "Stereotype", "e1"),
			NewClass("CM", "Metaclass"),
			NewExtension("x1", "e1", "e2"),
			e1, e2,
		)

		Expect(declarationOrder(generate(g))).To(Equal([]string{"Metaclass", "Stereotype"}))
	})

	It("fails for a generalization cycle", func() {
		g := graph(
			NewClass("C1", "Chicken"),
			NewClass("C2", "Egg"),
			NewGeneralization("g1", "C1", "C2"),
			NewGeneralization("g2", "C2", "C1"),
		)

		_, err := me.New(g, nil).Generate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("generalization cycle"))
		Expect(err.Error()).To(ContainSubstring("Chicken"))
		Expect(err.Error()).To(ContainSubstring("Egg"))
	})

	Context("random hierarchies", func() {
		// build creates a random generalization DAG. Edges only
		// ever point from later to earlier classes, so the input
		// is always acyclic.
		build := func(seed int64, size int) *metamodel.Graph {
			gen := namegenerator.NewNameGenerator(seed)
			random := rand.New(rand.NewSource(seed))

			var elements []metamodel.Element
			for i := 0; i < size; i++ {
				elements = append(elements, NewClass(fmt.Sprintf("C%d", i), fmt.Sprintf("%s-%d", gen.Generate(), i)))
			}
			for i := 1; i < size; i++ {
				n := random.Intn(3)
				if n > i {
					n = i
				}
				for _, b := range random.Perm(i)[:n] {
					elements = append(elements, NewGeneralization(fmt.Sprintf("g%d-%d", i, b), fmt.Sprintf("C%d", i), fmt.Sprintf("C%d", b)))
				}
			}
			return graph(elements...)
		}

		It("always declares bases before derived classes", func() {
			for seed := int64(0); seed < 5; seed++ {
				g := build(seed, 120)

				declared := map[string]bool{}
				for _, name := range declarationOrder(generate(g)) {
					c := g.ClassByName(name)
					Expect(c).NotTo(BeNil())
					for _, b := range c.Generalizations() {
						Expect(declared[b.Name]).To(BeTrue(), "%s declared before its base %s (seed %d)", name, b.Name, seed)
					}
					declared[name] = true
				}
				Expect(declared).To(HaveLen(120))
			}
		})

		It("is reproducible", func() {
			first := strings.Join(generate(build(42, 80)), "\n")
			second := strings.Join(generate(build(42, 80)), "\n")
			Expect(second).To(Equal(first))
		})
	})
})

var _ = Describe("type normalization", func() {
	It("folds all literal type spellings", func() {
		g := graph(
			NewClass("C", "Clazz", "a1", "a2", "a3", "a4"),
			NewAttribute("a1", "name", "String"),
			NewAttribute("a2", "count", "Integer"),
			NewAttribute("a3", "flag", "bool"),
			NewAttribute("a4", "bound", "UnlimitedNatural"),
		)

		lines := generate(g)
		Expect(lines).To(ContainElement(`    name: _attribute[str] = _attribute("name", str)`))
		Expect(lines).To(ContainElement(`    count: _attribute[int] = _attribute("count", int)`))
		Expect(lines).To(ContainElement(`    flag: _attribute[int] = _attribute("flag", int)`))
		Expect(lines).To(ContainElement(`    bound: _attribute[int] = _attribute("bound", int)`))
	})

	It("converts class named spellings into composite relations", func() {
		g := graph(
			NewClass("CE", "Element"),
			NewClass("CC", "Clazz", "a1"),
			NewAttribute("a1", "element", "Element"),
		)

		lines := generate(g)
		Expect(lines).To(ContainElement("    element: relation_many[Element]"))
		Expect(lines).To(ContainElement(`Clazz.element = association("element", Element, composite=True)`))
	})

	It("fails for an unknown type spelling", func() {
		g := graph(
			NewClass("CC", "Clazz", "a1"),
			NewAttribute("a1", "broken", "Unknown"),
		)

		_, err := me.New(g, nil).Generate()
		Expect(err).To(MatchError(ContainSubstring(`type "Unknown" is neither a literal type nor a known class`)))
	})
})
