package merger

import "github.com/MKhiriev/go-app-kernel/internal/tree"

// buildAuth produces the three auth sections and the errorhandler section.
// Each auth method starts disabled with no credentials and no callback.
func (m *Merger) buildAuth(_, user tree.Map) (tree.Map, error) {
	out := make(tree.Map, len(AuthSections)+1)

	for _, section := range AuthSections {
		defaults := tree.Map{
			"enable":      tree.Scalar(false),
			"credentials": tree.List(),
			"callback":    tree.List(),
		}
		out[section] = tree.Object(tree.MergeMaps(defaults, user.Section(section)))
	}

	errorHandler := tree.Map{
		"enable":            tree.Scalar(true),
		"error_callback":    tree.Strings("errorhandler", "CustomErrorHandler"),
		"shutdown_callback": tree.Strings("errorhandler", "CustomShutdownFunction"),
	}
	out[SectionErrorHandler] = tree.Object(tree.MergeMaps(errorHandler, user.Section(SectionErrorHandler)))

	return out, nil
}
