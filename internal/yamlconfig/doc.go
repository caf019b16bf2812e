// Package yamlconfig is the thin loader that turns a YAML document matching
// spec.md §6's frozen top-level shape into an unvalidated
// configmodel.Workflow (SPEC_FULL §4.12). It is not the hardened schema
// validator spec.md places out of scope — it only decodes the document
// shape; structural checks are left to configmodel's own Validate, which
// callers run separately, the way the teacher's Load functions read a file
// and unmarshal while structural checks live on the Config type itself
// (engine/core/loader.go's LoadConfig, cli/config.go).
package yamlconfig
