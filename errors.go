package framegraph

import "errors"

const (
	graphPrefix    = "passgraph: "
	compilePrefix  = "compiler: "
	linkPrefix     = "linker: "
	execPrefix     = "executor: "
	cachePrefix    = "cache: "
	bindingPrefix  = "binding: "
	registryPrefix = "registry: "
)

func newGraphErr(reason string) error   { return errors.New(graphPrefix + reason) }
func newCompileErr(reason string) error { return errors.New(compilePrefix + reason) }
func newLinkErr(reason string) error    { return errors.New(linkPrefix + reason) }
func newExecErr(reason string) error    { return errors.New(execPrefix + reason) }
func newCacheErr(reason string) error   { return errors.New(cachePrefix + reason) }
func newBindingErr(reason string) error { return errors.New(bindingPrefix + reason) }
func newRegErr(reason string) error     { return errors.New(registryPrefix + reason) }

// ErrCycle is reported by Compiler when the pass graph reachable from
// the root contains a cycle. Per the error taxonomy, this is a
// programming error: the caller is expected to panic on it rather
// than retry.
var ErrCycle = errors.New(compilePrefix + "cycle detected in pass graph")
