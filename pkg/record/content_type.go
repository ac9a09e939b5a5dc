package record

// ContentType describes a WordPress post type as reported by /wp/v2/types.
type ContentType struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Hierarchical bool     `json:"hierarchical"`
	RestBase     string   `json:"rest_base"`
	Taxonomies   []string `json:"taxonomies,omitzero"`
}

// Path returns the REST path segment for the type, falling back to its key.
func (ct ContentType) Path() string {
	if ct.RestBase != "" {
		return ct.RestBase
	}
	return ct.Key
}

// DisplayName returns Name, falling back to the key.
func (ct ContentType) DisplayName() string {
	if ct.Name != "" {
		return ct.Name
	}
	return ct.Key
}

// Taxonomy describes a classification scheme as reported by /wp/v2/taxonomies.
type Taxonomy struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Hierarchical bool     `json:"hierarchical"`
	RestBase     string   `json:"rest_base"`
	Types        []string `json:"types,omitzero"`
}
