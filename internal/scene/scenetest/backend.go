// Package scenetest provides an in-memory scene.Backend that tracks live resources.
package scenetest

import (
	"errors"

	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/vmath"
)

// Kind names the sort of resource a Backend handed out.
type Kind string

const (
	KindSurface   Kind = "surface"
	KindMarker    Kind = "marker"
	KindConnector Kind = "connector"
	KindGrid      Kind = "grid"
)

// ErrUpload is returned by NewSurface when FailUploads is set.
var ErrUpload = errors.New("scenetest: upload failed")

// Resource is a handle created by Backend.
type Resource struct {
	Kind     Kind
	Role     scene.Role
	Points   []vmath.Vec3
	Mesh     *mesh.Mesh
	Disposed bool
	backend  *Backend
}

// Dispose marks the resource released. Double disposal is counted as a bug.
func (r *Resource) Dispose() {
	if r.Disposed {
		r.backend.DoubleDisposals++
		return
	}
	r.Disposed = true
}

// Backend records every resource it creates.
type Backend struct {
	Created         []*Resource
	DoubleDisposals int
	FailUploads     bool
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) add(r *Resource) *Resource {
	r.backend = b
	b.Created = append(b.Created, r)
	return r
}

// NewSurface implements scene.Backend.
func (b *Backend) NewSurface(m *mesh.Mesh) (scene.Resource, error) {
	if b.FailUploads {
		return nil, ErrUpload
	}
	return b.add(&Resource{Kind: KindSurface, Mesh: m}), nil
}

// NewMarker implements scene.Backend.
func (b *Backend) NewMarker(p vmath.Vec3, role scene.Role) scene.Resource {
	return b.add(&Resource{Kind: KindMarker, Role: role, Points: []vmath.Vec3{p}})
}

// NewConnector implements scene.Backend.
func (b *Backend) NewConnector(a, c vmath.Vec3) scene.Resource {
	return b.add(&Resource{Kind: KindConnector, Points: []vmath.Vec3{a, c}})
}

// NewGrid implements scene.Backend.
func (b *Backend) NewGrid(size float64, divisions int) scene.Resource {
	return b.add(&Resource{Kind: KindGrid})
}

// Live returns the resources of kind k that are not disposed.
func (b *Backend) Live(k Kind) []*Resource {
	var out []*Resource
	for _, r := range b.Created {
		if r.Kind == k && !r.Disposed {
			out = append(out, r)
		}
	}
	return out
}

// LiveMarkers counts live markers with the given role.
func (b *Backend) LiveMarkers(role scene.Role) int {
	n := 0
	for _, r := range b.Live(KindMarker) {
		if r.Role == role {
			n++
		}
	}
	return n
}
