package shell

// Cache owns the mesh of one panel and rebuilds it only when its params change.
type Cache struct {
	params Params
	mesh   *Mesh
}

// Rebuild returns the mesh for p, building it unless the cached mesh was made
// from equal params. rebuilt reports whether a new mesh was built. On error
// the previous mesh stays cached and is returned with the error.
func (c *Cache) Rebuild(p Params) (mesh *Mesh, rebuilt bool, err error) {
	if c.mesh != nil && c.params == p {
		return c.mesh, false, nil
	}

	m, err := Build(p)
	if err != nil {
		return c.mesh, false, err
	}
	c.params = p
	c.mesh = m
	return m, true, nil
}

// Mesh returns the cached mesh, or nil before the first successful build.
func (c *Cache) Mesh() *Mesh {
	return c.mesh
}

// Params returns the params of the cached mesh.
func (c *Cache) Params() Params {
	return c.params
}

// Reset drops the cached mesh so the next Rebuild always builds.
func (c *Cache) Reset() {
	c.mesh = nil
	c.params = Params{}
}
