package merger

import (
	"strings"
	"unicode"
)

// Section names of the configuration tree.
const (
	SectionGeneral         = "general"
	SectionPath            = "path"
	SectionTesting         = "testing"
	SectionRequiredObjects = "required_objects"
	SectionErrorHandler    = "errorhandler"
	SectionAPIAuth         = "api_auth"
	SectionHTTPAuth        = "http_auth"
	SectionSessionAuth     = "session_auth"
)

// KernelSections lists the sections produced by the builders. Bootstrap
// steps read them before required files are loaded, so overlays may not
// change them.
var KernelSections = []string{
	SectionGeneral, SectionAPIAuth, SectionHTTPAuth, SectionSessionAuth,
	SectionErrorHandler, SectionPath, SectionTesting, SectionRequiredObjects,
}

// AuthSections lists the auth sections in bootstrap order.
var AuthSections = []string{SectionAPIAuth, SectionHTTPAuth, SectionSessionAuth}

// Execution contexts carried in general.parameters.context.
const (
	ContextBrowser     = "browser"
	ContextCommandLine = "command line"
)

// Class identifiers of the built-in components.
const (
	ClassDatabase     = "core.Database"
	ClassFilesystem   = "core.Filesystem"
	ClassErrorHandler = "core.ErrorHandler"
	ClassEncryption   = "core.Encryption"
	ClassTemplate     = "core.Template"
	ClassToken        = "core.Token"
	ClassHTTPClient   = "core.HTTPClient"
)

// FolderName converts an application name into a folder-safe form: lower
// case letters and digits, every other run of characters collapsed into a
// single underscore. "My App!" becomes "my_app".
func FolderName(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending {
				b.WriteByte('_')
				pending = false
			}
			b.WriteRune(r)
			continue
		}
		pending = b.Len() > 0
	}
	return b.String()
}
