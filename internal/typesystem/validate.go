package typesystem

import (
	"fmt"
	"strings"
)

// ValidateSchema performs the structural checks §4.4 assigns to
// validate_schema: every field's type is an output type, every
// argument's type is an input type, every interface implementation
// transitively supplies all required fields with compatible types,
// every union member is an object, and type, field, input-field and
// enum-value names conform to the Name grammar. Types whose names begin
// with `__` are skipped entirely; no name is rejected for using the
// reserved `__` introspection prefix.
func ValidateSchema(s *Schema) []error {
	var errs []error

	if s.Query != nil && !ValidName(s.Query.Name) {
		errs = append(errs, fmt.Errorf("Query root type has an invalid name %q", s.Query.Name))
	}

	for name, t := range s.TypeMap {
		if strings.HasPrefix(name, "__") {
			continue // introspection types are exempt
		}
		if !ValidName(name) {
			errs = append(errs, fmt.Errorf("type name %q must match /%s/", name, `^[_A-Za-z][_0-9A-Za-z]*$`))
		}
		errs = append(errs, validateType(s, t)...)
	}
	return errs
}

func validateType(s *Schema, t *Type) []error {
	var errs []error
	switch t.Kind {
	case KindObject:
		errs = append(errs, validateFields(s, t.Object.Name, t.Object.Fields())...)
		errs = append(errs, validateImplements(s, t.Object.Name, t.Object.Fields(), t.Object.Interfaces())...)
	case KindInterface:
		errs = append(errs, validateFields(s, t.Interface.Name, t.Interface.Fields())...)
		errs = append(errs, validateImplements(s, t.Interface.Name, t.Interface.Fields(), t.Interface.Interfaces())...)
	case KindUnion:
		if len(t.Union.Members()) == 0 {
			errs = append(errs, fmt.Errorf("Union type %s must define one or more member types", t.Union.Name))
		}
	case KindInputObject:
		for _, name := range t.InputObject.Fields().Names {
			f, _ := t.InputObject.Fields().Lookup(name)
			if !ValidName(f.Name) {
				errs = append(errs, fmt.Errorf("input field name %q on %s must match the Name grammar", f.Name, t.InputObject.Name))
			}
			if !f.Type.IsInputType() {
				errs = append(errs, fmt.Errorf("the type of %s.%s must be an input type but got %s", t.InputObject.Name, f.Name, f.Type))
			}
		}
	case KindEnum:
		seen := map[string]bool{}
		for _, v := range t.Enum.Values() {
			if !ValidName(v.Name) {
				errs = append(errs, fmt.Errorf("enum value name %q on %s must match the Name grammar", v.Name, t.Enum.Name))
			}
			if seen[v.Name] {
				errs = append(errs, fmt.Errorf("enum value %q duplicated in %s", v.Name, t.Enum.Name))
			}
			seen[v.Name] = true
		}
	}
	return errs
}

func validateFields(s *Schema, typeName string, fields FieldMap) []error {
	var errs []error
	if fields.Len() == 0 {
		errs = append(errs, fmt.Errorf("type %s must define one or more fields", typeName))
	}
	for _, name := range fields.Names {
		f, _ := fields.Lookup(name)
		if !ValidName(f.Name) {
			errs = append(errs, fmt.Errorf("field name %q on %s must match the Name grammar", f.Name, typeName))
		}
		if !f.Type.IsOutputType() {
			errs = append(errs, fmt.Errorf("the type of %s.%s must be an output type but got %s", typeName, f.Name, f.Type))
		}
		seenArg := map[string]bool{}
		for _, argName := range f.Args.Names {
			a, _ := f.Args.Lookup(argName)
			if seenArg[a.Name] {
				errs = append(errs, fmt.Errorf("argument %q duplicated on %s.%s", a.Name, typeName, f.Name))
			}
			seenArg[a.Name] = true
			if !a.Type.IsInputType() {
				errs = append(errs, fmt.Errorf("the type of %s.%s(%s:) must be an input type but got %s", typeName, f.Name, a.Name, a.Type))
			}
		}
	}
	return errs
}

func validateImplements(s *Schema, typeName string, fields FieldMap, interfaces []*Interface) []error {
	var errs []error
	for _, iface := range interfaces {
		for _, name := range iface.Fields().Names {
			ifaceField, _ := iface.Fields().Lookup(name)
			objField, ok := fields.Lookup(name)
			if !ok {
				errs = append(errs, fmt.Errorf("interface field %s.%s expected but %s does not provide it", iface.Name, name, typeName))
				continue
			}
			if !isCompatibleType(objField.Type, ifaceField.Type) {
				errs = append(errs, fmt.Errorf("interface field %s.%s expects type %s but %s.%s is type %s", iface.Name, name, ifaceField.Type, typeName, name, objField.Type))
			}
		}
	}
	return errs
}

// isCompatibleType allows an implementing field to be more specific
// (covariant object subtype, or non-null where the interface allows
// nullable) than the interface field, per the spec's "compatible
// types" rule for interface implementation.
func isCompatibleType(objType, ifaceType *Type) bool {
	if ifaceType.Kind == KindNonNull {
		inner := ifaceType.OfType
		if objType.Kind == KindNonNull {
			return isCompatibleType(objType.OfType, inner)
		}
		return isCompatibleType(objType, inner)
	}
	if objType.Kind == KindNonNull {
		return isCompatibleType(objType.OfType, ifaceType)
	}
	if ifaceType.Kind == KindList {
		return objType.Kind == KindList && isCompatibleType(objType.OfType, ifaceType.OfType)
	}
	if objType.Named() == ifaceType.Named() {
		return true
	}
	if objType.Kind == KindObject && ifaceType.Kind == KindInterface {
		for _, i := range objType.Object.Interfaces() {
			if i.Name == ifaceType.Interface.Name {
				return true
			}
		}
	}
	return false
}
