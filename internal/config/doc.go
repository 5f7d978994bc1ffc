// Package config defines the query and sizing requirement configuration and
// loads it from a YAML requirements file (requirements.yaml).
//
// Top-level types:
//   - Config{Query, Sizing} — full requirement tree parsed from YAML
//   - Query — optional cpu / vendor / system substring filters sent to the
//     remote results query
//   - Computation — benchmark era (cpu2006|cpu2017), core/chip count bounds
//     (exact or min/max, mutually exclusive per dimension), minimum total
//     megacycles, overhead percent, vCPU:pCPU ratio, optional vCPU count
//
// Load(path) reads the YAML file, applies defaults and validates. Validate
// reports contradictions as *ConfigError before any network activity.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors by re-adding the watch after a rename event.
package config
