package merger

import (
	"path/filepath"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// buildTesting derives the test-mode section. File locations are rooted
// under the resolved path.application_path.
func (m *Merger) buildTesting(built, user tree.Map) (tree.Map, error) {
	appPath := built.Section(SectionPath)["application_path"].StringOr("")
	testPath := filepath.Join(appPath, "tests")

	defaults := tree.Map{
		"enable":         tree.Scalar(false),
		"required_files": tree.List(),
		"test_files":     tree.List(),
		"test_path":      tree.Scalar(testPath),
		"fixtures_path":  tree.Scalar(filepath.Join(testPath, "fixtures")),
		"report_file":    tree.Scalar(filepath.Join(testPath, "report.xml")),
	}

	return tree.Map{SectionTesting: tree.Object(tree.MergeMaps(defaults, user.Section(SectionTesting)))}, nil
}
