package engine

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swashmesh/sizefield"
)

func domain(w, h float64) *geom.Bounds {
	return &geom.Bounds{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: w, Y: h}}
}

func signedArea(mesh *Mesh, t [3]int) float64 {
	p1, p2, p3 := mesh.Nodes[t[0]], mesh.Nodes[t[1]], mesh.Nodes[t[2]]
	return 0.5 * ((p2.X-p1.X)*(p3.Y-p1.Y) - (p3.X-p1.X)*(p2.Y-p1.Y))
}

func TestRefinerUniformField(t *testing.T) {
	session, err := Refiner{}.Open()
	require.NoError(t, err)
	defer session.Close()

	mesh, err := session.Generate(domain(100, 50), nil, sizefield.Uniform(10))
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Nodes)
	require.NotEmpty(t, mesh.Triangles)

	// 10x5 cells, each fanned into 4 triangles around its centre.
	assert.Len(t, mesh.Triangles, 10*5*4)
	// Corner nodes shared: (11*6) corners + 50 centres.
	assert.Len(t, mesh.Nodes, 11*6+50)

	// All node coordinates within the domain, covering its corners.
	covered := map[geom.Point]bool{}
	for _, p := range mesh.Nodes {
		assert.True(t, p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 50)
		covered[p] = true
	}
	for _, corner := range []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 50}} {
		assert.True(t, covered[corner], "corner %v missing", corner)
	}

	// Fans are emitted counter-clockwise.
	for i, tri := range mesh.Triangles {
		assert.Greater(t, signedArea(mesh, tri), 0.0, "triangle %d", i)
		for _, n := range tri {
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, len(mesh.Nodes))
		}
	}
}

func TestRefinerDeterministic(t *testing.T) {
	field := sizefield.NewControlPointField(
		[]geom.Point{{X: 10, Y: 10}}, 2, 10, 3, 30,
	)

	run := func() *Mesh {
		session, err := Refiner{}.Open()
		require.NoError(t, err)
		defer session.Close()
		mesh, err := session.Generate(domain(100, 100), nil, field)
		require.NoError(t, err)
		return mesh
	}

	first, second := run(), run()
	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Triangles, second.Triangles)
}

func TestRefinerRefinesNearControlPoint(t *testing.T) {
	coarse := sizefield.Uniform(10)
	fine := sizefield.NewControlPointField(
		[]geom.Point{{X: 5, Y: 5}}, 1, 10, 5, 20,
	)

	session, err := Refiner{}.Open()
	require.NoError(t, err)
	defer session.Close()

	coarseMesh, err := session.Generate(domain(100, 100), nil, coarse)
	require.NoError(t, err)
	fineMesh, err := session.Generate(domain(100, 100), nil, fine)
	require.NoError(t, err)

	assert.Greater(t, len(fineMesh.Nodes), len(coarseMesh.Nodes))

	// The extra nodes concentrate near the control point.
	near := 0
	for _, p := range fineMesh.Nodes {
		if p.X <= 20 && p.Y <= 20 {
			near++
		}
	}
	assert.Greater(t, near, 16, "expected refinement near (5, 5)")
}

func TestRefinerSessionLifecycle(t *testing.T) {
	session, err := Refiner{}.Open()
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close(), "Close must be idempotent")

	_, err = session.Generate(domain(10, 10), nil, sizefield.Uniform(1))
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestRefinerRejectsBadInput(t *testing.T) {
	session, err := Refiner{}.Open()
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Generate(domain(0, 10), nil, sizefield.Uniform(1))
	assert.Error(t, err)

	_, err = session.Generate(domain(10, 10), nil, sizefield.Uniform(0))
	assert.ErrorIs(t, err, ErrBadField)
}
