package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"visibility-mapper/internal/descriptor"
	"visibility-mapper/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer resolving patterns from the current
// directory.
func NewAnalyzer() *Analyzer {
	return &Analyzer{graph: NewTypeGraph()}
}

// WithDir resolves package patterns relative to dir.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/cars").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage collects the package's structs first, then attaches
// constructors and builders to them.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()

	// scope.Names is sorted, so pkgInfo.Structs is too.
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info := &StructInfo{
			ID:     TypeID{PkgPath: pkg.PkgPath, Name: name},
			GoType: named,
		}
		a.analyzeStructFields(st, info)

		a.graph.Structs[info.ID] = info
		pkgInfo.Structs = append(pkgInfo.Structs, info.ID)
	}

	for _, id := range pkgInfo.Structs {
		a.linkBuilder(a.graph.Structs[id])
	}

	for _, name := range scope.Names() {
		if fn, ok := scope.Lookup(name).(*types.Func); ok && fn.Exported() {
			a.linkConstructor(fn)
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeStructFields extracts every field and its accessors.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *StructInfo) {
	methods := types.NewMethodSet(types.NewPointer(info.GoType))

	for i := range st.NumFields() {
		field := st.Field(i)

		fieldInfo := FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		}

		for j := range methods.Len() {
			fn, ok := methods.At(j).Obj().(*types.Func)
			if !ok {
				continue
			}

			sig := fn.Signature()

			switch {
			case fieldInfo.Getter == "" && isGetter(fn.Name(), sig, &fieldInfo):
				fieldInfo.Getter = fn.Name()
			case fieldInfo.Setter == "" && isSetter(fn.Name(), sig, &fieldInfo):
				fieldInfo.Setter = fn.Name()
			}
		}

		info.Fields = append(info.Fields, fieldInfo)
	}
}

// linkBuilder marks info as a builder when it has a Build method producing
// another struct of the graph, and records it on that struct.
func (a *Analyzer) linkBuilder(info *StructInfo) {
	ptr := types.NewPointer(info.GoType)

	obj, _, _ := types.LookupFieldOrMethod(ptr, false, info.GoType.Obj().Pkg(), descriptor.BuildMethod)

	build, ok := obj.(*types.Func)
	if !ok {
		return
	}

	sig := build.Signature()
	if sig.Params().Len() != 0 || !resultsOK(sig) {
		return
	}

	target, pointer := a.producedStruct(sig.Results().At(0).Type())
	if target == nil || target == info {
		return
	}

	b := &BuilderInfo{
		ID:      info.ID,
		Pointer: pointer,
		Methods: make(map[string]string),
	}

	methods := types.NewMethodSet(ptr)
	for i := range target.Fields {
		f := &target.Fields[i]

		for j := range methods.Len() {
			fn, ok := methods.At(j).Obj().(*types.Func)
			if ok && fn.Name() != descriptor.BuildMethod && isBuilderMethod(fn.Name(), fn.Signature(), f, ptr) {
				b.Methods[f.Name] = fn.Name()

				break
			}
		}
	}

	id := target.ID
	info.BuilderFor = &id
	target.Builders = append(target.Builders, b)
}

// linkConstructor attaches fn to the struct it constructs, or to the builder
// it creates.
func (a *Analyzer) linkConstructor(fn *types.Func) {
	if !strings.HasPrefix(fn.Name(), "New") {
		return
	}

	sig := fn.Signature()
	if sig.Recv() != nil || !resultsOK(sig) {
		return
	}

	target, pointer := a.producedStruct(sig.Results().At(0).Type())
	if target == nil {
		return
	}

	if target.BuilderFor != nil {
		if pointer && sig.Params().Len() == 0 && sig.Results().Len() == 1 {
			for _, b := range a.graph.Structs[*target.BuilderFor].Builders {
				if b.ID == target.ID && b.Factory == "" {
					b.Factory = fn.Name()
				}
			}
		}

		return
	}

	target.Constructors = append(target.Constructors, fn.Name())
}

// producedStruct resolves T or *T to a struct in the graph.
func (a *Analyzer) producedStruct(t types.Type) (*StructInfo, bool) {
	pointer := false
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
		pointer = true
	}

	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil, false
	}

	id := TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()}

	return a.graph.Structs[id], pointer
}

// resultsOK accepts (X) and (X, error).
func resultsOK(sig *types.Signature) bool {
	res := sig.Results()

	switch res.Len() {
	case 1:
		return true
	case 2:
		return isError(res.At(1).Type())
	default:
		return false
	}
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func names(method string, f *FieldInfo, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if subject, ok := match.AccessorSubject(method, prefix); ok && match.SameIdent(subject, f.Name) {
			return true
		}
	}

	return false
}

func isGetter(name string, sig *types.Signature, f *FieldInfo) bool {
	return sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
		types.Identical(sig.Results().At(0).Type(), f.Type) &&
		names(name, f, "", match.PrefixGet)
}

func isSetter(name string, sig *types.Signature, f *FieldInfo) bool {
	if sig.Params().Len() != 1 || !types.Identical(sig.Params().At(0).Type(), f.Type) {
		return false
	}

	res := sig.Results()
	if res.Len() > 1 || (res.Len() == 1 && !isError(res.At(0).Type())) {
		return false
	}

	return names(name, f, match.PrefixSet)
}

func isBuilderMethod(name string, sig *types.Signature, f *FieldInfo, builder types.Type) bool {
	return sig.Params().Len() == 1 && types.Identical(sig.Params().At(0).Type(), f.Type) &&
		sig.Results().Len() == 1 && types.Identical(sig.Results().At(0).Type(), builder) &&
		names(name, f, "", match.PrefixWith, match.PrefixSet)
}
