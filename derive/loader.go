package derive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/npillmayer/compdata/sig"
	"github.com/pkg/errors"
)

// KindDirective marks a struct type declaration as a node-kind declaration.
const KindDirective = "//compdata:kind"

// Decls holds the node-kind declarations of a Go source file.
type Decls struct {
	Package string            // package name of the source file
	Imports map[string]string // imports of the source file, name ↦ path
	Kinds   []*sig.Kind       // declared node-kinds, in source order
}

// LoadDecls reads node-kind declarations from Go source. src may be nil, in
// which case the file is read from filename (see go/parser.ParseFile).
func LoadDecls(filename string, src interface{}) (*Decls, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "loading declarations from %s", filename)
	}
	decls := &Decls{
		Package: file.Name.Name,
		Imports: make(map[string]string),
	}
	for _, imp := range file.Imports {
		p, _ := strconv.Unquote(imp.Path.Value)
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		decls.Imports[name] = p
	}
	compdataName := importName(decls.Imports, "github.com/npillmayer/compdata")
	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if !isKindDecl(gen, ts) {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, errors.Errorf("%s: node-kind %s has to be declared as a struct",
					fset.Position(ts.Pos()), ts.Name.Name)
			}
			k, err := kindFromStruct(ts.Name.Name, st, compdataName)
			if err != nil {
				return nil, errors.Wrapf(err, "%s", fset.Position(ts.Pos()))
			}
			decls.Kinds = append(decls.Kinds, k)
		}
	}
	tracer().Infof("loaded %d node-kind declarations from %s", len(decls.Kinds), filename)
	return decls, nil
}

// Register adds all declared node-kinds to a registry.
func (decls *Decls) Register(reg *sig.Registry) error {
	for _, k := range decls.Kinds {
		if err := reg.Register(k); err != nil {
			return err
		}
	}
	return nil
}

func importName(imps map[string]string, p string) string {
	for name, ip := range imps {
		if ip == p {
			return name
		}
	}
	return "compdata"
}

// isKindDecl checks for the kind directive in the doc comment of the type
// spec or, for single-spec declarations, of the type declaration.
func isKindDecl(gen *ast.GenDecl, ts *ast.TypeSpec) bool {
	docs := []*ast.CommentGroup{ts.Doc}
	if len(gen.Specs) == 1 {
		docs = append(docs, gen.Doc)
	}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, c := range doc.List {
			if strings.TrimSpace(c.Text) == KindDirective {
				return true
			}
		}
	}
	return false
}

func kindFromStruct(name string, st *ast.StructType, compdataName string) (*sig.Kind, error) {
	b := sig.NewKindBuilder(name)
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return nil, errors.Errorf("node-kind %s: embedded fields are not allowed", name)
		}
		cst, ok := field.Type.(*ast.StructType)
		if !ok {
			return nil, errors.Errorf("node-kind %s: constructor %s has to be a struct",
				name, field.Names[0].Name)
		}
		yields := tagValue(field.Tag, "yields")
		for _, conName := range field.Names {
			cb := b.Con(conName.Name)
			for _, f := range cst.Fields.List {
				index := tagValue(f.Tag, "index")
				child := isChild(f.Type, compdataName)
				if !child && index != "" {
					return nil, errors.Errorf("node-kind %s: index on payload field of %s",
						name, conName.Name)
				}
				names := f.Names
				if len(names) == 0 {
					names = []*ast.Ident{ast.NewIdent("")}
				}
				for _, n := range names {
					fname := strcase.ToLowerCamel(n.Name)
					if child {
						cb.CI(fname, index)
					} else {
						cb.P(fname, payloadType(f.Type))
					}
				}
			}
			if yields != "" {
				cb.Yields(yields)
			}
			cb.End()
		}
	}
	return b.Kind()
}

func isChild(expr ast.Expr, compdataName string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && pkg.Name == compdataName && sel.Sel.Name == "Child"
}

func payloadType(expr ast.Expr) *sig.PayloadType {
	gotype := types.ExprString(expr)
	if pt, ok := sig.PayloadByName(gotype); ok {
		return pt
	}
	return sig.Opaque(gotype)
}

// tagValue extracts key from a struct tag of the form `cdt:"key=value,…"`.
func tagValue(tag *ast.BasicLit, key string) string {
	if tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return ""
	}
	for _, kv := range strings.Split(reflect.StructTag(raw).Get("cdt"), ",") {
		if k, v, found := strings.Cut(strings.TrimSpace(kv), "="); found && k == key {
			return v
		}
	}
	return ""
}
