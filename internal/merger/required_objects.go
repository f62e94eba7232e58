package merger

import (
	"path/filepath"

	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// buildRequiredObjects assembles the built-in component catalog for the
// current execution context and merges the user-declared components on top.
func (m *Merger) buildRequiredObjects(built, user tree.Map) (tree.Map, error) {
	general := built.Section(SectionGeneral)
	p := built.Section(SectionPath)
	folder := p["application_folder"].StringOr("")

	catalog := tree.Map{
		"database": descriptor("database", ClassDatabase, tree.Map{
			"driver":          tree.Scalar("sqlite3"),
			"dsn":             tree.Scalar(filepath.Join(p["data_path"].StringOr(""), folder+".db")),
			"migrations_path": p["migrations_path"],
		}),
		"filesystem": descriptor("filesystem", ClassFilesystem, tree.Map{
			"root":        p["application_path"],
			"upload_path": p["upload_path"],
		}),
		"errorhandler": descriptor("errorhandler", ClassErrorHandler, tree.Map{
			"log_path":         p["log_path"],
			"development_mode": general["development_mode"],
		}),
		"encryption": descriptor("encryption", ClassEncryption, tree.Map{
			"key":  tree.Scalar(""),
			"salt": tree.Scalar(folder),
		}),
	}

	ctx, _ := general.Section("parameters")["context"].Str()
	if ctx == ContextBrowser {
		catalog["template"] = descriptor("template", ClassTemplate, tree.Map{
			"template_path": p["template_path"],
			"extension":     tree.Scalar(".tmpl"),
		})
		catalog["token"] = descriptor("token", ClassToken, tree.Map{
			"issuer":    general["application_name"],
			"algorithm": tree.Scalar("HS256"),
		})
	} else {
		catalog["httpclient"] = descriptor("httpclient", ClassHTTPClient, tree.Map{
			"base_url": tree.Scalar(""),
			"timeout":  tree.Scalar("30s"),
		})
	}

	merged := tree.MergeMaps(catalog, user.Section(SectionRequiredObjects))

	return tree.Map{SectionRequiredObjects: tree.Object(merged)}, nil
}

func descriptor(name, class string, params tree.Map) tree.Value {
	return tree.Object(tree.Map{
		"name":             tree.Scalar(name),
		"class_identifier": tree.Scalar(class),
		"parameters":       tree.Object(params),
	})
}
