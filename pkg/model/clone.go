package model

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Clone returns a copy of the task safe to hand to callers while the
// scheduler keeps mutating the original. Maps and slices are copied one
// level deep; payload and result values stay shared, they are opaque.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	c.Metadata = cloneAnyMap(t.Metadata)
	c.Dependencies = append([]TaskDependency(nil), t.Dependencies...)
	c.Requirements = append([]ResourceRequirement(nil), t.Requirements...)
	if t.AssignedResources != nil {
		c.AssignedResources = make(map[string]int, len(t.AssignedResources))
		for k, v := range t.AssignedResources {
			c.AssignedResources[k] = v
		}
	}
	c.InputData = cloneAnyMap(t.InputData)
	c.OutputData = cloneAnyMap(t.OutputData)
	if t.Result != nil {
		r := *t.Result
		r.OutputData = cloneAnyMap(t.Result.OutputData)
		r.Metadata = cloneAnyMap(t.Result.Metadata)
		c.Result = &r
	}
	return &c
}

// Clone returns a copy of the resource.
func (r *Resource) Clone() *Resource {
	if r == nil {
		return nil
	}
	c := *r
	c.Capabilities = cloneAnyMap(r.Capabilities)
	c.Metadata = cloneAnyMap(r.Metadata)
	return &c
}

// Clone returns a copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Capabilities = cloneAnyMap(n.Capabilities)
	c.Metadata = cloneAnyMap(n.Metadata)
	return &c
}
