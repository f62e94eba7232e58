package merger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-app-kernel/internal/codec"
	"github.com/MKhiriev/go-app-kernel/internal/tree"
)

// minEncodedLength is the length a parameter value must exceed before it is
// offered to the decoder.
const minEncodedLength = 4

// parametersDecodedKey marks a general section whose parameters already went
// through the decoder. Merging such a tree again leaves them as they are.
const parametersDecodedKey = "parameters_decoded"

func (m *Merger) buildGeneral(_, user tree.Map) (tree.Map, error) {
	userGeneral := user.Section(SectionGeneral)

	name, _ := userGeneral["application_name"].Str()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: general.application_name is required", ErrConfiguration)
	}
	folder := FolderName(name)

	params := userGeneral.Section("parameters").Clone()
	if ctx, _ := params["context"].Str(); ctx == "" {
		params["context"] = tree.Scalar(ContextBrowser)
	}
	alreadyDecoded := userGeneral[parametersDecodedKey].BoolOr(false)
	if ctx, _ := params["context"].Str(); ctx == ContextBrowser && !alreadyDecoded {
		if err := m.decodeParameters(params); err != nil {
			return nil, err
		}
	}

	defaults := tree.Map{
		"application_name":         tree.Scalar(name),
		"application_display_name": tree.Scalar(name),
		"module":                   tree.Scalar(params["module"].StringOr(folder)),
		"option":                   tree.Scalar(params["option"].StringOr("index")),
		"development_mode":         tree.Scalar(false),
		"timezone":                 tree.Scalar("UTC"),
		"log_level":                tree.Scalar("info"),
		"items_per_page":           tree.Scalar(20),
		"output_format":            tree.Scalar("html"),
		"charset":                  tree.Scalar("UTF-8"),
		"date_format":              tree.Scalar("2006-01-02"),
		"language":                 tree.Scalar(""),
		"session_name":             tree.Scalar(folder),
		"required_files":           tree.List(),
	}

	general := tree.MergeMaps(defaults, userGeneral)
	general["application_name"] = tree.Scalar(name)
	general["parameters"] = tree.Object(params)
	general[parametersDecodedKey] = tree.Scalar(true)

	return tree.Map{SectionGeneral: tree.Object(general)}, nil
}

// decodeParameters replaces, in place, every string parameter longer than
// minEncodedLength that the decoder recognises.
func (m *Merger) decodeParameters(params tree.Map) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "context" {
			continue
		}
		value, ok := params[key].Str()
		if !ok || utf8.RuneCountInString(value) <= minEncodedLength {
			continue
		}

		decoded, err := m.decoder.Decode(value)
		switch {
		case err == nil:
			params[key] = tree.Scalar(decoded)
		case errors.Is(err, codec.ErrNotEncoded):
		default:
			return fmt.Errorf("%w: parameter %q: %v", ErrConfiguration, key, err)
		}
	}

	return nil
}
