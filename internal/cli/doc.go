// Package cli is the command-line boundary of the kernel.
//
// The root command binds the launch flags, merges them with the environment
// and defaults, and assembles the kernel: the user configuration source,
// the component catalog, the parameter decoder and the bootstrapper. The
// subcommands then either bootstrap once ("run", "inspect") or host the
// HTTP boundary ("serve").
package cli
