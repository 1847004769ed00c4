package landmark

// Point is a single face-mesh landmark in normalized image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is one detection result: the ordered landmark set of a single
// face, in face-mesh index order. An empty Points slice means no face
// was detected in the source frame.
type Frame struct {
	Points []Point `json:"points"`
}

// Six-point eye contours in the face-mesh index schema, ordered
// p1..p6: outer corner, two upper-lid points, inner corner, two
// lower-lid points.
var (
	LeftEye  = [6]int{362, 385, 387, 263, 373, 380}
	RightEye = [6]int{33, 160, 158, 133, 153, 144}
)

// eyeMaxIndex is the highest index either contour touches.
const eyeMaxIndex = 387

// HasEyes reports whether the frame carries enough landmarks to cover
// both eye contours.
func (f Frame) HasEyes() bool {
	return len(f.Points) > eyeMaxIndex
}

// Eye extracts one six-point contour. The caller must have checked
// HasEyes.
func (f Frame) Eye(idx [6]int) [6]Point {
	var pts [6]Point
	for i, j := range idx {
		pts[i] = f.Points[j]
	}
	return pts
}

// FrameCallback receives frames pushed by a Source. Callbacks run on
// the source's delivery goroutine and must not block.
type FrameCallback func(f Frame)

// Source delivers landmark frames from an external face-mesh engine.
// The core never pulls; it registers a callback and reacts.
type Source interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb FrameCallback)
	ClearCallback()
	Name() string
}
