package classir

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"strings"
)

// LoadClassTypePlugin dynamically loads a ClassType adapter from a
// shared object built with `go build -buildmode=plugin`. The plugin
// must export a "Name" *string symbol and a "ClassType" symbol
// implementing the ClassType interface; both are registered under
// RegisterClassType(*Name, ClassType).
func LoadClassTypePlugin(path string) error {
	plug, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("classir: opening plugin %s: %w", path, err)
	}

	symName, err := plug.Lookup("Name")
	if err != nil {
		return fmt.Errorf("classir: plugin %s missing 'Name' symbol: %w", path, err)
	}
	name, ok := symName.(*string)
	if !ok {
		return fmt.Errorf("classir: plugin %s 'Name' symbol is not a *string", path)
	}

	symClassType, err := plug.Lookup("ClassType")
	if err != nil {
		return fmt.Errorf("classir: plugin %s missing 'ClassType' symbol: %w", path, err)
	}
	ct, ok := symClassType.(ClassType)
	if !ok {
		return fmt.Errorf("classir: plugin %s 'ClassType' symbol does not implement ClassType", path)
	}

	RegisterClassType(*name, ct)
	return nil
}

// LoadClassTypePluginsFromDir loads every .so/.dll/.dylib file in dir
// as a ClassType plugin. A missing dir is not an error, since plugin
// discovery is optional; individual load failures are collected and
// returned together so one bad plugin doesn't block the rest.
func LoadClassTypePluginsFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("classir: reading plugin directory %s: %w", dir, err)
	}

	var errs []string
	for _, entry := range entries {
		if entry.IsDir() || !isClassTypePluginFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := LoadClassTypePlugin(path); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("classir: failed to load some plugins:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}

func isClassTypePluginFile(name string) bool {
	return strings.HasSuffix(name, ".so") ||
		strings.HasSuffix(name, ".dll") ||
		strings.HasSuffix(name, ".dylib")
}
