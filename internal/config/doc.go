// Package config maps project files to the format that reads and writes
// them. The XML document (*.peu) and the HCL template (*.hcl) both load into
// the same project model, so callers pick a Format by path and never branch
// on the format themselves.
package config
