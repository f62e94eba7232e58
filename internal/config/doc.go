// Package config provides launch settings loading, merging, and validation
// for the appkernel binary.
//
// Settings are assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//
// The application configuration itself (the general/path/auth sections) is
// not part of these settings; it lives in the file named by App.ConfigFile
// and is read by the loader package.
package config
