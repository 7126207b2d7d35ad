package astparser

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

// parseTypeSystemDefinition parses one top-level SDL definition or
// extension and registers it as a RootNode (§4.2's type-system
// grammar).
func parseTypeSystemDefinition(p *parser) {
	if p.atKeyword("extend") {
		p.parseTypeExtension()
		return
	}

	desc := p.parseDescription()

	switch {
	case p.atKeyword("schema"):
		p.parseSchemaDefinition(desc, false)
	case p.atKeyword("scalar"):
		p.parseScalarTypeDefinition(desc, false)
	case p.atKeyword("type"):
		p.parseObjectTypeDefinition(desc, false)
	case p.atKeyword("interface"):
		p.parseInterfaceTypeDefinition(desc, false)
	case p.atKeyword("union"):
		p.parseUnionTypeDefinition(desc, false)
	case p.atKeyword("enum"):
		p.parseEnumTypeDefinition(desc, false)
	case p.atKeyword("input"):
		p.parseInputObjectTypeDefinition(desc, false)
	case p.atKeyword("directive"):
		p.parseDirectiveDefinition(desc)
	default:
		p.fail("Unexpected %s.", p.tok.Desc())
	}
}

func (p *parser) parseTypeExtension() {
	p.expectKeyword("extend")
	switch {
	case p.atKeyword("schema"):
		p.parseSchemaDefinition(ast.Description{}, true)
	case p.atKeyword("scalar"):
		p.parseScalarTypeDefinition(ast.Description{}, true)
	case p.atKeyword("type"):
		p.parseObjectTypeDefinition(ast.Description{}, true)
	case p.atKeyword("interface"):
		p.parseInterfaceTypeDefinition(ast.Description{}, true)
	case p.atKeyword("union"):
		p.parseUnionTypeDefinition(ast.Description{}, true)
	case p.atKeyword("enum"):
		p.parseEnumTypeDefinition(ast.Description{}, true)
	case p.atKeyword("input"):
		p.parseInputObjectTypeDefinition(ast.Description{}, true)
	default:
		p.fail("Unexpected %s.", p.tok.Desc())
	}
}

func (p *parser) parseSchemaDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("schema")
	directives := p.parseDirectives(true)

	var refs []int
	if p.skip(token.BRACE_L) {
		for p.err == nil && !p.at(token.BRACE_R) {
			refs = append(refs, p.parseRootOperationTypeDefinition())
		}
		p.expect(token.BRACE_R)
	}

	def := ast.SchemaDefinition{
		Description:                     desc,
		RootOperationTypeDefinitionRefs: nil,
		Directives:                      directives,
		IsExtension:                     isExt,
		Position:                        p.position(start),
	}
	ref := p.doc.AddSchemaDefinitionRootNode(def)
	p.doc.SchemaDefinitions[ref].AddRootOperationTypeDefinitionRefs(refs...)
}

func (p *parser) parseRootOperationTypeDefinition() int {
	start := p.tok
	var opType ast.OperationType
	switch {
	case p.skipKeyword("query"):
		opType = ast.OperationTypeQuery
	case p.skipKeyword("mutation"):
		opType = ast.OperationTypeMutation
	case p.skipKeyword("subscription"):
		opType = ast.OperationTypeSubscription
	default:
		p.fail("Unexpected %s.", p.tok.Desc())
	}
	p.expect(token.COLON)
	name := p.parseName()
	p.doc.RootOperationTypeDefs = append(p.doc.RootOperationTypeDefs, ast.RootOperationTypeDefinition{
		OperationType: opType,
		NamedType:     name,
		Position:      p.position(start),
	})
	return len(p.doc.RootOperationTypeDefs) - 1
}

func (p *parser) parseScalarTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("scalar")
	name := p.parseName()
	directives := p.parseDirectives(true)
	p.doc.AddScalarTypeDefinitionRootNode(ast.ScalarTypeDefinition{
		Description: desc, Name: name, Directives: directives, IsExtension: isExt, Position: p.position(start),
	})
}

func (p *parser) parseImplementsInterfaces() []string {
	if !p.skipKeyword("implements") {
		return nil
	}
	p.skip(token.AMP)
	var names []string
	names = append(names, p.parseName())
	for p.skip(token.AMP) {
		names = append(names, p.parseName())
	}
	return names
}

func (p *parser) parseObjectTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("type")
	name := p.parseName()
	ifaces := p.parseImplementsInterfaces()
	directives := p.parseDirectives(true)
	fieldRefs := p.parseFieldsDefinition()

	ref := p.doc.AddObjectTypeDefinitionRootNode(ast.ObjectTypeDefinition{
		Description: desc, Name: name, ImplementsInterfaces: ifaces, Directives: directives, IsExtension: isExt,
		Position: p.position(start),
	})
	if len(fieldRefs) > 0 {
		p.doc.ObjectTypeDefinitions[ref].AddFieldRefs(fieldRefs...)
	}
}

func (p *parser) parseFieldsDefinition() []int {
	if !p.skip(token.BRACE_L) {
		return nil
	}
	var refs []int
	for p.err == nil && !p.at(token.BRACE_R) {
		refs = append(refs, p.parseFieldDefinition())
	}
	p.expect(token.BRACE_R)
	return refs
}

func (p *parser) parseFieldDefinition() int {
	start := p.tok
	desc := p.parseDescription()
	name := p.parseName()
	args := p.parseArgumentsDefinition()
	p.expect(token.COLON)
	typeRef := p.parseType()
	directives := p.parseDirectives(true)
	return p.doc.AddFieldDefinition(ast.FieldDefinition{
		Description: desc, Name: name, ArgumentsRefs: args, Type: typeRef, Directives: directives, Position: p.position(start),
	})
}

func (p *parser) parseArgumentsDefinition() []int {
	if !p.skip(token.PAREN_L) {
		return nil
	}
	var refs []int
	for p.err == nil && !p.at(token.PAREN_R) {
		refs = append(refs, p.parseInputValueDefinition())
	}
	p.expect(token.PAREN_R)
	return refs
}

func (p *parser) parseInputValueDefinition() int {
	start := p.tok
	desc := p.parseDescription()
	name := p.parseName()
	p.expect(token.COLON)
	typeRef := p.parseType()
	hasDefault := false
	var defaultRef int
	if p.skip(token.EQUALS) {
		hasDefault = true
		defaultRef = p.parseValue(true)
	}
	directives := p.parseDirectives(true)
	return p.doc.AddInputValueDefinition(ast.InputValueDefinition{
		Description: desc, Name: name, Type: typeRef, HasDefaultValue: hasDefault, DefaultValue: defaultRef,
		Directives: directives, Position: p.position(start),
	})
}

func (p *parser) parseInterfaceTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("interface")
	name := p.parseName()
	ifaces := p.parseImplementsInterfaces()
	directives := p.parseDirectives(true)
	fieldRefs := p.parseFieldsDefinition()
	p.doc.AddInterfaceTypeDefinitionRootNode(ast.InterfaceTypeDefinition{
		Description: desc, Name: name, ImplementsInterfaces: ifaces, Directives: directives, FieldsRefs: fieldRefs,
		IsExtension: isExt, Position: p.position(start),
	})
}

func (p *parser) parseUnionTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("union")
	name := p.parseName()
	directives := p.parseDirectives(true)
	var members []string
	if p.skip(token.EQUALS) {
		p.skip(token.PIPE)
		members = append(members, p.parseName())
		for p.skip(token.PIPE) {
			members = append(members, p.parseName())
		}
	}
	p.doc.AddUnionTypeDefinitionRootNode(ast.UnionTypeDefinition{
		Description: desc, Name: name, Directives: directives, MemberTypes: members, IsExtension: isExt, Position: p.position(start),
	})
}

func (p *parser) parseEnumTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("enum")
	name := p.parseName()
	directives := p.parseDirectives(true)
	var valueRefs []int
	if p.skip(token.BRACE_L) {
		for p.err == nil && !p.at(token.BRACE_R) {
			valueRefs = append(valueRefs, p.parseEnumValueDefinition())
		}
		p.expect(token.BRACE_R)
	}
	p.doc.AddEnumTypeDefinitionRootNode(ast.EnumTypeDefinition{
		Description: desc, Name: name, Directives: directives, ValuesRefs: valueRefs, IsExtension: isExt, Position: p.position(start),
	})
}

func (p *parser) parseEnumValueDefinition() int {
	start := p.tok
	desc := p.parseDescription()
	value := p.parseName()
	directives := p.parseDirectives(true)
	return p.doc.AddEnumValueDefinition(ast.EnumValueDefinition{
		Description: desc, Value: value, Directives: directives, Position: p.position(start),
	})
}

func (p *parser) parseInputObjectTypeDefinition(desc ast.Description, isExt bool) {
	start := p.tok
	p.expectKeyword("input")
	name := p.parseName()
	directives := p.parseDirectives(true)
	var fieldRefs []int
	if p.skip(token.BRACE_L) {
		for p.err == nil && !p.at(token.BRACE_R) {
			fieldRefs = append(fieldRefs, p.parseInputValueDefinition())
		}
		p.expect(token.BRACE_R)
	}
	p.doc.AddInputObjectTypeDefinitionRootNode(ast.InputObjectTypeDefinition{
		Description: desc, Name: name, Directives: directives, FieldsRefs: fieldRefs, IsExtension: isExt, Position: p.position(start),
	})
}

func (p *parser) parseDirectiveDefinition(desc ast.Description) {
	start := p.tok
	p.expectKeyword("directive")
	p.expect(token.AT)
	name := p.parseName()
	args := p.parseArgumentsDefinition()
	repeatable := p.skipKeyword("repeatable")
	p.expectKeyword("on")
	p.skip(token.PIPE)
	locations := []ast.DirectiveLocation{p.parseDirectiveLocation()}
	for p.skip(token.PIPE) {
		locations = append(locations, p.parseDirectiveLocation())
	}
	p.doc.AddDirectiveDefinitionRootNode(ast.DirectiveDefinition{
		Description: desc, Name: name, ArgumentsRefs: args, Repeatable: repeatable, Locations: locations, Position: p.position(start),
	})
}

func (p *parser) parseDirectiveLocation() ast.DirectiveLocation {
	name := p.parseName()
	return ast.DirectiveLocation(name)
}
