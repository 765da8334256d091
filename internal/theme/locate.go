package theme

import (
	"path/filepath"
	"reflect"
	"runtime"
)

// resolveBasePath returns the directory of the source file that defines the
// variant. Variants implementing Locator decide for themselves.
func resolveBasePath(variant Variant) string {
	if locator, ok := variant.(Locator); ok {
		return locator.BasePath()
	}

	method, ok := reflect.TypeOf(variant).MethodByName("ValidateSettings")
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(method.Func.Pointer())
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(fn.Entry())
	// Promoted and value-receiver methods called through a pointer are
	// compiler-generated wrappers without a real file.
	if file == "" || file == "<autogenerated>" {
		return ""
	}
	return filepath.Dir(file)
}
