package generator_test

import (
	"strings"

	. "github.com/mandelsoft/metagen/pkg/metamodel/testtypes"
	. "github.com/mandelsoft/metagen/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-test/deep"

	me "github.com/mandelsoft/metagen/pkg/generator"
	"github.com/mandelsoft/metagen/pkg/metamodel"
	"github.com/mandelsoft/metagen/pkg/override"
	"github.com/mandelsoft/metagen/pkg/registry"
)

var header = []string{
	"# This file is generated by metagen. DO NOT EDIT!",
	"",
	"from modeling.properties import (",
	"    association,",
	"    attribute as _attribute,",
	"    derived,",
	"    derivedunion,",
	"    enumeration as _enumeration,",
	"    redefine,",
	"    relation_many,",
	"    relation_one,",
	")",
	"",
}

func graph(elements ...metamodel.Element) *metamodel.Graph {
	return Must(metamodel.NewGraph(elements))
}

func generate(g *metamodel.Graph, supers ...*me.Supermodel) []string {
	return Must(me.New(g, nil, supers...).Generate())
}

func expected(body ...string) []string {
	return append(append([]string{}, header...), body...)
}

var _ = Describe("generator", func() {
	Context("declarations", func() {
		It("declares bases before derived classes", func() {
			g := graph(
				NewClass("CD", "Derived", "a1"),
				NewClass("CB", "Base"),
				NewAttribute("a1", "name", "String"),
				NewGeneralization("g1", "CD", "CB"),
			)

			Expect(deep.Equal(generate(g), expected(
				"class Base():",
				"    pass",
				"",
				"",
				"class Derived(Base):",
				`    name: _attribute[str] = _attribute("name", str)`,
				"",
				"",
				"",
			))).To(BeNil())
		})

		It("renders title cased boolean defaults", func() {
			a := NewAttribute("a1", "isAbstract", "Boolean")
			a.Default = "true"
			g := graph(NewClass("C", "Classifier", "a1"), a)

			Expect(generate(g)).To(ContainElement(
				`    isAbstract: _attribute[int] = _attribute("isAbstract", int, default=True)`,
			))
		})

		It("quotes string defaults", func() {
			a := NewAttribute("a1", "name", "String")
			a.Default = "anonymous"
			g := graph(NewClass("C", "Named", "a1"), a)

			Expect(generate(g)).To(ContainElement(
				`    name: _attribute[str] = _attribute("name", str, default="anonymous")`,
			))
		})

		It("emits attributes sorted by name", func() {
			g := graph(
				NewClass("C", "Clazz", "a2", "a1"),
				NewAttribute("a2", "zeta", "String"),
				NewAttribute("a1", "alpha", "String"),
			)

			lines := generate(g)
			Expect(deep.Equal(lines[len(header):len(header)+3], []string{
				"class Clazz():",
				`    alpha: _attribute[str] = _attribute("alpha", str)`,
				`    zeta: _attribute[str] = _attribute("zeta", str)`,
			})).To(BeNil())
		})

		It("expands enumeration attributes with the first literal as default", func() {
			g := graph(
				NewClass("CV", "VisibilityKind", "l1", "l2"),
				NewAttribute("l1", "public", "String"),
				NewAttribute("l2", "private", "String"),
				NewClass("CN", "NamedElement", "a1"),
				NewAttribute("a1", "visibility", "VisibilityKind"),
			)

			lines := generate(g)
			Expect(lines).To(ContainElement(
				`    visibility = _enumeration("visibility", ("public", "private"), "public")`,
			))
			// the enumeration class itself is never declared
			Expect(lines).NotTo(ContainElement("class VisibilityKind():"))
		})

		It("annotates shadowed attributes", func() {
			e1 := NewEnd("e1", "member", "CE")
			e2 := NewEnd("e2", "member", "CE")
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CB", "Base", "e1"),
				NewClass("CD", "Derived", "e2"),
				NewGeneralization("g1", "CD", "CB"),
				e1, e2,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement("    member: relation_many[Element]"))
			Expect(lines).To(ContainElement("    member: relation_many[Element]  # type: ignore[assignment]"))
		})

		It("skips metaclass extension ends", func() {
			e1 := NewEnd("e1", "baseClass", "CM")
			e2 := NewEnd("e2", "", "CS")
			g := graph(
				NewClass("CM", "Metaclass"),
				NewClass("CS", "Stereotype", "e1"),
				NewExtension("x1", "e1", "e2"),
				e1, e2,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement("class Stereotype(Metaclass):"))
			Expect(lines).NotTo(ContainElement(ContainSubstring("baseClass")))
		})
	})

	Context("selection", func() {
		It("excludes profile classes, simple types and marked classes", func() {
			simple := NewClass("CS", "ValueSpec")
			simple.Stereotypes = []string{"SimpleAttribute"}
			inProfile := NewClass("CP", "StereotypeDef")
			inProfile.Package = "P"

			g := graph(
				NewProfile("P", "profile"),
				NewClass("CE", "Element"),
				simple,
				inProfile,
				NewClass("CT", "~Internal"),
			)

			Expect(deep.Equal(generate(g), expected(
				"class Element():",
				"    pass",
				"",
				"",
				"",
			))).To(BeNil())
		})

		It("inlines associations to simple types as string attributes", func() {
			simple := NewClass("CS", "Expression")
			simple.Stereotypes = []string{"SimpleAttribute"}
			e1 := NewEnd("e1", "guard", "CS")
			e2 := NewEnd("e2", "transition", "CT")
			g := graph(
				simple,
				NewClass("CT", "Transition", "e1"),
				NewAssociation("s1", "e1", "e2"),
				e1, e2,
			)

			Expect(generate(g)).To(ContainElement(
				`    guard: _attribute[str] = _attribute("guard", str)`,
			))
		})
	})

	Context("associations", func() {
		It("emits composite and opposite for anchored named ends", func() {
			e1 := NewEnd("e1", "nodes", "CN")
			e1.Aggregation = metamodel.AGGREGATION_COMPOSITE
			e1.Upper = "*"
			e2 := NewEnd("e2", "owner", "CC")
			e2.Upper = "1"
			g := graph(
				NewClass("CC", "Container", "e1"),
				NewClass("CN", "Node", "e2"),
				NewAssociation("s1", "e1", "e2"),
				e1, e2,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement(
				`Container.nodes = association("nodes", Node, composite=True, opposite="owner")`,
			))
			Expect(lines).To(ContainElement(
				`Node.owner = association("owner", Container, upper=1, opposite="nodes")`,
			))

			var nodes []string
			for _, l := range lines {
				if strings.Contains(l, `association("nodes"`) {
					nodes = append(nodes, l)
				}
			}
			Expect(nodes).To(HaveLen(1))
		})

		It("omits the opposite for unnamed or dangling ends", func() {
			e1 := NewEnd("e1", "nodes", "CN")
			e2 := NewEnd("e2", "", "CC")
			g := graph(
				NewClass("CC", "Container", "e1"),
				NewClass("CN", "Node"),
				NewAssociation("s1", "e1", "e2"),
				e1, e2,
			)

			Expect(generate(g)).To(ContainElement(
				`Container.nodes = association("nodes", Node)`,
			))
		})

		It("renders single valued relations only for upper bound 1", func() {
			e1 := NewEnd("e1", "one", "CE")
			e1.Upper = "1"
			e2 := NewEnd("e2", "some", "CE")
			e2.Upper = "2"
			e3 := NewEnd("e3", "all", "CE")
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CH", "Holder", "e1", "e2", "e3"),
				e1, e2, e3,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement("    one: relation_one[Element]"))
			Expect(lines).To(ContainElement("    some: relation_many[Element]"))
			Expect(lines).To(ContainElement("    all: relation_many[Element]"))
		})

		It("emits redefinitions after the plain associations", func() {
			e1 := NewEnd("e1", "target", "CE")
			e2 := NewEnd("e2", "target", "CS")
			e2.Tags = []metamodel.Tag{{Feature: "redefines", Value: "Edge.target"}}
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CS", "Special"),
				NewClass("CB", "Edge", "e1"),
				NewClass("CD", "SpecialEdge", "e2"),
				NewGeneralization("g1", "CD", "CB"),
				NewGeneralization("g2", "CS", "CE"),
				e1, e2,
			)

			lines := generate(g)
			base := -1
			redefine := -1
			for i, l := range lines {
				if l == `Edge.target = association("target", Element)` {
					base = i
				}
				if l == `SpecialEdge.target = redefine(SpecialEdge, "target", Special, Edge.target)` {
					redefine = i
				}
			}
			Expect(base).To(BeNumerically(">", 0))
			Expect(redefine).To(BeNumerically(">", base))
		})

		It("fails for conflicting redefines and subsets tags", func() {
			e1 := NewEnd("e1", "member", "CE")
			e1.Tags = []metamodel.Tag{
				{Feature: "redefines", Value: "Base.member"},
				{Feature: "subsets", Value: "member"},
			}
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CC", "Clazz", "e1"),
				e1,
			)

			_, err := me.New(g, nil).Generate()
			Expect(err).To(MatchError(ContainSubstring("Clazz.member: conflicting redefines and subsets tags")))
		})

		It("fails for an unnamed emitted association end", func() {
			e1 := NewEnd("e1", "", "CE")
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CC", "Clazz", "e1"),
				e1,
			)

			_, err := me.New(g, nil).Generate()
			Expect(err).To(MatchError(ContainSubstring("unnamed association end")))
		})
	})

	Context("derived unions and subsets", func() {
		It("links every subsetting attribute exactly once", func() {
			m := NewEnd("m", "member", "CE")
			m.Derived = true
			oa := NewEnd("oa", "ownedAttribute", "CE")
			oa.Tags = []metamodel.Tag{{Feature: "subsets", Value: "member"}}
			oe := NewEnd("oe", "ownedElement", "CE")
			oe.Tags = []metamodel.Tag{{Feature: "subsets", Value: "member"}}
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CN", "Namespace", "m"),
				NewClass("CC", "Class", "oa"),
				NewClass("CP", "Package", "oe"),
				NewGeneralization("g1", "CC", "CN"),
				NewGeneralization("g2", "CP", "CN"),
				m, oa, oe,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement(`Namespace.member = derivedunion("member", Element)`))

			var links []string
			for _, l := range lines {
				if strings.Contains(l, "Namespace.member.add(") {
					links = append(links, l)
				}
			}
			Expect(deep.Equal(links, []string{
				"Namespace.member.add(Class.ownedAttribute)  # type: ignore[attr-defined]",
				"Namespace.member.add(Package.ownedElement)  # type: ignore[attr-defined]",
			})).To(BeNil())
		})

		It("renders derived union bounds", func() {
			m := NewEnd("m", "member", "CE")
			m.Derived = true
			m.Lower = "1"
			m.Upper = "5"
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CN", "Namespace", "m"),
				m,
			)

			Expect(generate(g)).To(ContainElement(
				`Namespace.member = derivedunion("member", Element, lower=1, upper=5)`,
			))
		})

		It("tolerates unresolved subset targets", func() {
			oa := NewEnd("oa", "ownedAttribute", "CE")
			oa.Tags = []metamodel.Tag{{Feature: "subsets", Value: "nothing"}}
			g := graph(
				NewClass("CE", "Element"),
				NewClass("CC", "Class", "oa"),
				oa,
			)

			lines := generate(g)
			Expect(lines).To(ContainElement(`Class.ownedAttribute = association("ownedAttribute", Element)`))
			Expect(lines).NotTo(ContainElement(ContainSubstring(".add(")))
		})
	})

	Context("overrides", func() {
		It("replaces generation for overridden keys", func() {
			ovr := Must(override.Parse(strings.Join([]string{
				"override header",
				"from extras import mixin",
				"%%",
				"override Clazz.name: _attribute[str]",
				`Clazz.name = _attribute("name", str, default="?")`,
				"%%",
			}, "\n")))

			g := graph(
				NewClass("CC", "Clazz", "a1"),
				NewAttribute("a1", "name", "String"),
			)

			lines := Must(me.New(g, ovr).Generate())
			Expect(lines).To(ContainElement("from extras import mixin"))
			Expect(lines).To(ContainElement("    name: _attribute[str]"))
			Expect(lines).To(ContainElement(`Clazz.name = _attribute("name", str, default="?")`))
			Expect(lines).NotTo(ContainElement(`    name: _attribute[str] = _attribute("name", str)`))
		})

		It("replaces whole class declarations", func() {
			ovr := Must(override.Parse(strings.Join([]string{
				"override Clazz",
				"class Clazz(Mixin):",
				"    pass",
				"%%",
			}, "\n")))

			g := graph(NewClass("CC", "Clazz"))

			lines := Must(me.New(g, ovr).Generate())
			Expect(lines).To(ContainElement("class Clazz(Mixin):\n    pass"))
			Expect(lines).NotTo(ContainElement("class Clazz():"))
		})

		It("emits overridden operations and skips the rest", func() {
			ovr := Must(override.Parse(strings.Join([]string{
				"override Clazz.isValid: bool",
				"def isValid(self):",
				"    return True",
				"%%",
			}, "\n")))

			c := NewClass("CC", "Clazz")
			c.Operations = []string{"o1", "o2"}
			g := graph(
				c,
				NewOperation("o1", "isValid"),
				NewOperation("o2", "validate"),
			)

			lines := Must(me.New(g, ovr).Generate())
			Expect(lines).To(ContainElement("    isValid: bool"))
			Expect(lines).To(ContainElement("def isValid(self):\n    return True"))
			Expect(lines).NotTo(ContainElement(ContainSubstring("validate")))
		})
	})

	Context("supermodels", func() {
		var uml *registry.Language

		BeforeEach(func() {
			uml = registry.New().Lookup("UML")
		})

		It("references supermodel classes instead of redeclaring them", func() {
			soe := NewEnd("soe", "ownedElement", "SE")
			soe.Derived = true
			super := graph(
				NewClass("SE", "Element", "soe"),
				NewClass("SP", "Package"),
				NewGeneralization("sg", "SP", "SE"),
				soe,
			)

			pe := NewEnd("pe", "packagedElement", "CPE")
			pe.Tags = []metamodel.Tag{{Feature: "subsets", Value: "ownedElement"}}
			model := graph(
				NewClass("CPE", "PackageableElement"),
				NewClass("CP", "Package", "pe"),
				pe,
			)

			lines := generate(model, me.NewSupermodel(uml, super))
			Expect(lines).To(ContainElement("from uml import Package"))
			Expect(lines).NotTo(ContainElement("class Package():"))
			Expect(lines).To(ContainElement(`Package.packagedElement = association("packagedElement", PackageableElement)`))
			Expect(lines).To(ContainElement("from uml import Element"))
			Expect(lines).To(ContainElement("Element.ownedElement.add(Package.packagedElement)  # type: ignore[attr-defined]"))
		})

		It("imports a referenced symbol only once", func() {
			soe := NewEnd("soe", "ownedElement", "SE")
			soe.Derived = true
			super := graph(NewClass("SE", "Element", "soe"), soe)

			// the class reference and the subset resolution both
			// need the supermodel Element symbol
			t := NewEnd("t", "item", "CT")
			t.Tags = []metamodel.Tag{{Feature: "subsets", Value: "ownedElement"}}
			model := graph(
				NewClass("CE", "Element"),
				NewClass("CT", "Thing", "t"),
				NewGeneralization("g1", "CT", "CE"),
				t,
			)

			lines := generate(model, me.NewSupermodel(uml, super))
			Expect(lines).To(ContainElement("Element.ownedElement.add(Thing.item)  # type: ignore[attr-defined]"))
			var imports []string
			for _, l := range lines {
				if l == "from uml import Element" {
					imports = append(imports, l)
				}
			}
			Expect(imports).To(HaveLen(1))
		})

		It("ignores profile owned and enumeration supermodel classes", func() {
			inProfile := NewClass("SP", "Element")
			inProfile.Package = "P"
			super := graph(
				NewProfile("P", "profile"),
				inProfile,
			)

			model := graph(NewClass("CE", "Element"))

			lines := generate(model, me.NewSupermodel(uml, super))
			Expect(lines).To(ContainElement("class Element():"))
			Expect(lines).NotTo(ContainElement("from uml import Element"))
		})
	})

	Context("determinism", func() {
		build := func() *metamodel.Graph {
			e1 := NewEnd("e1", "nodes", "CN")
			e1.Aggregation = metamodel.AGGREGATION_COMPOSITE
			e2 := NewEnd("e2", "owner", "CC")
			e2.Upper = "1"
			return graph(
				NewClass("CC", "Container", "e1"),
				NewClass("CN", "Node", "e2"),
				NewClass("CB", "Base"),
				NewGeneralization("g1", "CC", "CB"),
				NewGeneralization("g2", "CN", "CB"),
				NewAssociation("s1", "e1", "e2"),
				e1, e2,
			)
		}

		It("produces byte identical output for identical inputs", func() {
			first := strings.Join(generate(build()), "\n")
			second := strings.Join(generate(build()), "\n")
			Expect(second).To(Equal(first))
		})

		It("emits stamp lines after the header", func() {
			gen := me.New(build(), nil)
			gen.SetStamp("# digest: abc", "")
			lines := Must(gen.Generate())
			Expect(lines[len(header)]).To(Equal("# digest: abc"))
		})
	})
})
