package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-app-kernel/internal/merger"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

var errInvalidParameter = errors.New("parameters must be given as key=value")

// parseParameters turns "key=value" arguments into general.parameters
// entries. A key given more than once becomes a list.
func parseParameters(args []string) (tree.Map, error) {
	params := tree.Map{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidParameter, arg)
		}

		existing, seen := params[key]
		switch {
		case !seen:
			params[key] = tree.Scalar(value)
		case existing.IsList():
			params[key] = tree.List(append(existing.List(), tree.Scalar(value))...)
		default:
			params[key] = tree.List(existing, tree.Scalar(value))
		}
	}
	return params, nil
}

// userConfiguration layers params and the execution context over the
// source's current tree.
func (k *kernel) userConfiguration(params tree.Map) tree.Map {
	user := k.source.Snapshot()

	merged := tree.MergeMaps(user.Section(merger.SectionGeneral).Section("parameters"), params)
	if k.cfg.App.Context != "" {
		merged["context"] = tree.Scalar(k.cfg.App.Context)
	}
	user.Set(tree.Object(merged), merger.SectionGeneral, "parameters")

	return user
}
