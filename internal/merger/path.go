package merger

import (
	"github.com/MKhiriev/go-app-kernel/internal/paths"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

func (m *Merger) buildPath(built, user tree.Map) (tree.Map, error) {
	name := built.Section(SectionGeneral)["application_name"].StringOr("")

	defaults := tree.Map{
		"base_path":          tree.Scalar(m.basePath),
		"application_folder": tree.Scalar(FolderName(name)),
		"application_path":   tree.Scalar("{base_path}/{application_folder}"),
		"template_path":      tree.Scalar("{application_path}/templates"),
		"language_folder":    tree.Scalar("{application_path}/languages"),
		"upload_path":        tree.Scalar("{application_path}/uploads"),
		"log_path":           tree.Scalar("{application_path}/logs"),
		"data_path":          tree.Scalar("{application_path}/data"),
		"migrations_path":    tree.Scalar("{application_path}/migrations"),
		"vendor_path":        tree.Scalar("{base_path}/vendor"),
		"base_url":           tree.Scalar("/"),
		"application_url":    tree.Scalar("{base_url}{application_folder}"),
	}

	merged := tree.MergeMaps(defaults, user.Section(SectionPath))

	return tree.Map{SectionPath: tree.Object(paths.ResolvePlaceholders(merged))}, nil
}
