package configmodel

import (
	"fmt"

	"dario.cat/mergo"
)

// ApplyRootDefaults extracts the ROOT task declaration (if present) and
// merges its fields into every sibling task as defaults, then removes ROOT
// from the task list — it never becomes a runtime Task itself.
//
// Ground: the teacher's mergo.Merge(dst, src, mergo.WithOverride) pattern
// (engine/domain/task/config.go Config.Merge) merges a fully-specified
// override into a base. Here the precedence runs the other way — ROOT
// supplies *defaults*, and an explicit sibling field must survive — so this
// calls mergo.Merge without WithOverride, which is mergo's documented
// default: only zero-valued destination fields are filled from src, non-zero
// ones are left untouched. The source's in-place-dict-mutation pitfall
// (spec.md §9) is avoided by merging into a fresh copy of each sibling
// rather than the declared slice element itself.
func ApplyRootDefaults(tasks []TaskDecl) ([]TaskDecl, error) {
	var root *TaskDecl
	out := make([]TaskDecl, 0, len(tasks))
	for i := range tasks {
		if tasks[i].Name == RootTaskName {
			t := tasks[i]
			root = &t
			continue
		}
		out = append(out, tasks[i])
	}
	if root == nil {
		return out, nil
	}
	for i := range out {
		merged := out[i]
		rootCopy := *root
		if err := mergo.Merge(&merged, rootCopy); err != nil {
			return nil, fmt.Errorf("configmodel: failed to merge ROOT defaults into %q: %w", merged.Name, err)
		}
		out[i] = merged
	}
	return out, nil
}
