package astprinter

import (
	"strconv"
	"strings"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/lexer"
)

func (p *printer) printDescription(d ast.Description) string {
	if !d.HasDescription {
		return ""
	}
	if d.Block {
		return lexer.PrintBlockString(d.Content, false) + "\n"
	}
	return strconv.Quote(d.Content) + "\n"
}

func (p *printer) printExtend(isExt bool) string {
	if isExt {
		return "extend "
	}
	return ""
}

func (p *printer) printSchemaDefinition(ref int) string {
	sd := p.doc.SchemaDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(sd.Description))
	b.WriteString(p.printExtend(sd.IsExtension))
	b.WriteString("schema")
	b.WriteString(p.printDirectives(sd.Directives))
	b.WriteString(" {\n")
	for _, rref := range sd.RootOperationTypeDefinitionRefs {
		r := p.doc.RootOperationTypeDefs[rref]
		b.WriteString("  " + r.OperationType.String() + ": " + r.NamedType + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (p *printer) printScalarTypeDefinition(ref int) string {
	s := p.doc.ScalarTypeDefinitions[ref]
	return p.printDescription(s.Description) + p.printExtend(s.IsExtension) + "scalar " + s.Name + p.printDirectives(s.Directives)
}

func (p *printer) printImplements(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return " implements " + strings.Join(names, " & ")
}

func (p *printer) printObjectTypeDefinition(ref int) string {
	o := p.doc.ObjectTypeDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(o.Description))
	b.WriteString(p.printExtend(o.IsExtension))
	b.WriteString("type " + o.Name)
	b.WriteString(p.printImplements(o.ImplementsInterfaces))
	b.WriteString(p.printDirectives(o.Directives))
	b.WriteString(p.printFieldsBlock(o.FieldsRefs))
	return b.String()
}

func (p *printer) printFieldsBlock(refs []int) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" {\n")
	for _, ref := range refs {
		b.WriteString("  " + p.printFieldDefinition(ref) + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (p *printer) printFieldDefinition(ref int) string {
	f := p.doc.FieldDefinitions[ref]
	s := f.Name + p.printArgumentsDefinitionInline(f.ArgumentsRefs) + ": " + p.doc.PrintType(f.Type) + p.printDirectives(f.Directives)
	if f.Description.HasDescription {
		s = strings.TrimSuffix(p.printDescription(f.Description), "\n") + "\n  " + s
	}
	return s
}

func (p *printer) printArgumentsDefinitionInline(refs []int) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = p.printInputValueDefinition(ref)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) printInputValueDefinition(ref int) string {
	iv := p.doc.InputValueDefinitions[ref]
	s := iv.Name + ": " + p.doc.PrintType(iv.Type)
	if iv.HasDefaultValue {
		s += " = " + p.printValue(iv.DefaultValue)
	}
	return s + p.printDirectives(iv.Directives)
}

func (p *printer) printInterfaceTypeDefinition(ref int) string {
	it := p.doc.InterfaceTypeDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(it.Description))
	b.WriteString(p.printExtend(it.IsExtension))
	b.WriteString("interface " + it.Name)
	b.WriteString(p.printImplements(it.ImplementsInterfaces))
	b.WriteString(p.printDirectives(it.Directives))
	b.WriteString(p.printFieldsBlock(it.FieldsRefs))
	return b.String()
}

func (p *printer) printUnionTypeDefinition(ref int) string {
	u := p.doc.UnionTypeDefinitions[ref]
	s := p.printDescription(u.Description) + p.printExtend(u.IsExtension) + "union " + u.Name + p.printDirectives(u.Directives)
	if len(u.MemberTypes) > 0 {
		s += " = " + strings.Join(u.MemberTypes, " | ")
	}
	return s
}

func (p *printer) printEnumTypeDefinition(ref int) string {
	e := p.doc.EnumTypeDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(e.Description))
	b.WriteString(p.printExtend(e.IsExtension))
	b.WriteString("enum " + e.Name)
	b.WriteString(p.printDirectives(e.Directives))
	if len(e.ValuesRefs) > 0 {
		b.WriteString(" {\n")
		for _, vref := range e.ValuesRefs {
			v := p.doc.EnumValueDefinitions[vref]
			b.WriteString("  " + v.Value + p.printDirectives(v.Directives) + "\n")
		}
		b.WriteString("}")
	}
	return b.String()
}

func (p *printer) printInputObjectTypeDefinition(ref int) string {
	io := p.doc.InputObjectTypeDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(io.Description))
	b.WriteString(p.printExtend(io.IsExtension))
	b.WriteString("input " + io.Name)
	b.WriteString(p.printDirectives(io.Directives))
	if len(io.FieldsRefs) > 0 {
		b.WriteString(" {\n")
		for _, ref := range io.FieldsRefs {
			b.WriteString("  " + p.printInputValueDefinition(ref) + "\n")
		}
		b.WriteString("}")
	}
	return b.String()
}

func (p *printer) printDirectiveDefinition(ref int) string {
	d := p.doc.DirectiveDefinitions[ref]
	var b strings.Builder
	b.WriteString(p.printDescription(d.Description))
	b.WriteString("directive @" + d.Name)
	b.WriteString(p.printArgumentsDefinitionInline(d.ArgumentsRefs))
	if d.Repeatable {
		b.WriteString(" repeatable")
	}
	b.WriteString(" on ")
	locs := make([]string, len(d.Locations))
	for i, l := range d.Locations {
		locs[i] = string(l)
	}
	b.WriteString(strings.Join(locs, " | "))
	return b.String()
}
