package shell

// Counts are the vertex and triangle totals of a panel mesh, per block.
type Counts struct {
	MainVerts int
	MainFaces int
	SideVerts int // per strip; a panel has two
	SideFaces int
	RingVerts int // per ring; inline panels have two
	RingFaces int

	TotalVerts int
	TotalFaces int
}

// Count returns the block sizes for a silhouette of curveLen points swept
// over numSegs angular segments. Free-nose panels share a single tip vertex.
func Count(curveLen, numSegs int, inline bool) Counts {
	c := Counts{
		MainVerts: (numSegs+1)*(curveLen-1) + 1,
		MainFaces: numSegs * ((curveLen-2)*2 + 1),
		SideVerts: curveLen * 2,
		SideFaces: (curveLen - 1) * 2,
		RingVerts: (numSegs + 1) * 2,
		RingFaces: numSegs * 2,
	}
	if inline {
		c.MainVerts = (numSegs + 1) * curveLen
		c.MainFaces = numSegs * (curveLen - 1) * 2
	}

	c.TotalVerts = c.MainVerts*2 + c.SideVerts*2 + c.RingVerts
	c.TotalFaces = c.MainFaces*2 + c.SideFaces*2 + c.RingFaces
	if inline {
		c.TotalVerts += c.RingVerts
		c.TotalFaces += c.RingFaces
	}
	return c
}

// Block offsets into the vertex buffer.
func (c Counts) innerStart() int { return c.MainVerts }
func (c Counts) sideStart() int  { return c.MainVerts * 2 }
func (c Counts) ringStart() int  { return c.MainVerts*2 + c.SideVerts*2 }
