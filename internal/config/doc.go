// Package config defines the format-agnostic model of a build descriptor and
// the Loader interface implemented by the format-specific packages
// (hcl_adapter, yaml_adapter).
//
// A build descriptor records the parameters of one deployment descriptor
// build: where the entity files live, where the output goes, which token file
// to read and which output mode to use. Every field is optional; unset fields
// are filled from command-line flags or defaults by the caller.
package config
