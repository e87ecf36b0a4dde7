package inspect

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/fractory-go/fractory/internal/diag"
)

// Directive comments follow the go:generate convention: a //fractory:<name>
// line, no leading space, in the declaration's doc comment.
const (
	directiveModel      = "fractory:model"
	directiveFactory    = "fractory:factory"
	directiveDispatcher = "fractory:dispatcher"
)

// Config controls package loading.
type Config struct {
	// Dir is the working directory for package resolution.
	Dir string
	// Patterns are go/packages load patterns, e.g. "./...".
	Patterns []string
}

type loader struct {
	found map[string]*packages.Package
}

// Load loads the requested packages and discovers annotated declarations.
func Load(cfg Config) (*Result, error) {
	mode := packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
		packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
		packages.NeedImports | packages.NeedDeps
	pkgs, err := packages.Load(&packages.Config{
		Mode: mode,
		Dir:  cfg.Dir,
		Fset: token.NewFileSet(),
	}, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var loadErrs []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("packages did not load cleanly:\n  %s", strings.Join(loadErrs, "\n  "))
	}

	l := &loader{found: make(map[string]*packages.Package)}
	result := &Result{}
	for _, pkg := range pkgs {
		l.discover(pkg, result)
	}

	// Discovery order over files and packages is a host artifact; sorting by
	// fully-qualified name makes every downstream decision order-independent.
	sort.Slice(result.Models, func(i, j int) bool {
		return result.Models[i].FQN() < result.Models[j].FQN()
	})
	sort.Slice(result.Sites, func(i, j int) bool {
		return result.Sites[i].FQN() < result.Sites[j].FQN()
	})
	return result, nil
}

func (l *loader) discover(pkg *packages.Package, result *Result) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				groups := []*ast.CommentGroup{gd.Doc, ts.Doc, ts.Comment}
				switch {
				case hasDirective(groups, directiveModel):
					if md := l.extractModel(pkg, ts); md != nil {
						result.Models = append(result.Models, md)
					}
				case hasDirective(groups, directiveFactory):
					if site := l.extractSite(pkg, ts, SiteFactory); site != nil {
						result.Sites = append(result.Sites, site)
					}
				case hasDirective(groups, directiveDispatcher):
					if site := l.extractSite(pkg, ts, SiteDispatcher); site != nil {
						result.Sites = append(result.Sites, site)
					}
				}
			}
		}
	}
}

// hasDirective reports whether any comment group carries the directive.
func hasDirective(groups []*ast.CommentGroup, name string) bool {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, "//"+name)
			if ok && (rest == "" || strings.HasPrefix(rest, " ")) {
				return true
			}
		}
	}
	return false
}

func (l *loader) extractModel(pkg *packages.Package, ts *ast.TypeSpec) *ModelDecl {
	obj := pkg.Types.Scope().Lookup(ts.Name.Name)
	if obj == nil {
		return nil
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil
	}

	md := &ModelDecl{
		PkgPath:    pkg.PkgPath,
		PkgName:    pkg.Name,
		Name:       ts.Name.Name,
		Generic:    named.TypeParams().Len() > 0,
		Implements: make(map[string]bool),
		Pos:        l.posOf(pkg, ts.Pos()),
	}

	for i := 0; i < named.NumMethods(); i++ {
		fn := named.Method(i)
		if !fn.Exported() {
			continue
		}
		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Variadic() || sig.Results().Len() != 1 {
			continue
		}
		ret := types.TypeString(sig.Results().At(0).Type(), nil)
		id, kind := classifyReturn(ret, md.FQN())
		if kind == KindNone {
			continue
		}
		b, _ := bindingByID(id)
		arity := sig.Params().Len()
		param := ""
		if arity == 1 {
			param = types.TypeString(sig.Params().At(0).Type(), nil)
		}
		_, ptrRecv := sig.Recv().Type().(*types.Pointer)
		md.Members = append(md.Members, Member{
			Name:        fn.Name(),
			Arity:       arity,
			StrategyID:  id,
			Kind:        kind,
			CtxOK:       ctxOK(b, arity, param),
			PointerRecv: ptrRecv,
			Pos:         l.posOf(pkg, fn.Pos()),
		})
	}

	// Only the value type counts: synthesis consults value literals, and a
	// pointer-only implementation would not compile there.
	for _, b := range bindings {
		iface := l.lookupInterface(pkg, b.factoryType)
		if iface == nil {
			continue
		}
		if types.Implements(named, iface) {
			md.Implements[b.id] = true
		}
	}

	md.HasMarker = hasMarker(named)

	sort.Slice(md.Members, func(i, j int) bool { return md.Members[i].Name < md.Members[j].Name })
	return md
}

// hasMarker reports whether the type carries the runtime marker method,
// usually by embedding adapter.ModelTag. The check is structural so model
// packages need not be loadable alongside the runtime package here.
func hasMarker(named *types.Named) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(named), false, nil, "FractoryModel")
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}
	return sig.Params().Len() == 0 && sig.Results().Len() == 0
}

func (l *loader) extractSite(pkg *packages.Package, ts *ast.TypeSpec, kind SiteKind) *FactorySite {
	obj := pkg.Types.Scope().Lookup(ts.Name.Name)
	if obj == nil {
		return nil
	}

	site := &FactorySite{
		Kind:      kind,
		PkgPath:   pkg.PkgPath,
		PkgName:   pkg.Name,
		Name:      ts.Name.Name,
		Dir:       filepath.Dir(pkg.Fset.Position(ts.Pos()).Filename),
		Supported: make(map[string]bool),
		Pos:       l.posOf(pkg, ts.Pos()),
	}

	_, isIface := obj.Type().Underlying().(*types.Interface)
	site.IsInterface = isIface
	if !isIface {
		return site
	}

	for _, b := range bindings {
		fi := l.lookupInterface(pkg, b.factoryType)
		if fi == nil {
			continue
		}
		if types.Implements(obj.Type(), fi) {
			site.Supported[b.id] = true
		}
	}
	return site
}

// lookupInterface resolves a fully-qualified interface name through the
// loaded import graph.
func (l *loader) lookupInterface(from *packages.Package, fqn string) *types.Interface {
	idx := strings.LastIndex(fqn, ".")
	path, name := fqn[:idx], fqn[idx+1:]
	p := l.find(from, path, make(map[string]bool))
	if p == nil || p.Types == nil {
		return nil
	}
	obj := p.Types.Scope().Lookup(name)
	if obj == nil {
		return nil
	}
	iface, _ := obj.Type().Underlying().(*types.Interface)
	return iface
}

func (l *loader) find(from *packages.Package, path string, seen map[string]bool) *packages.Package {
	if p, ok := l.found[path]; ok {
		return p
	}
	if from.PkgPath == path {
		l.found[path] = from
		return from
	}
	if seen[from.PkgPath] {
		return nil
	}
	seen[from.PkgPath] = true
	for _, imp := range from.Imports {
		if p := l.find(imp, path, seen); p != nil {
			return p
		}
	}
	return nil
}

func (l *loader) posOf(pkg *packages.Package, p token.Pos) diag.Pos {
	position := pkg.Fset.Position(p)
	return diag.Pos{File: position.Filename, Line: position.Line, Column: position.Column}
}
