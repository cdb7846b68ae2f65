// Package signal converts per-frame landmark sets into the named boolean
// and scalar signals consumed by the orchestrator. It keeps no state: every
// signal is a pure function of one frame's landmarks.
package signal

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	HandWrist        = 0
	HandThumbTip     = 4
	HandIndexPIP     = 6
	HandIndexTip     = 8
	HandMiddlePIP    = 10
	HandMiddleTip    = 12
	HandRingPIP      = 14
	HandRingTip      = 16
	HandPinkyPIP     = 18
	HandPinkyTip     = 20
	HandNumLandmarks = 21
)

// Pose landmark indices following MediaPipe convention.
const (
	PoseNose          = 0
	PoseLeftEar       = 7
	PoseRightEar      = 8
	PoseMouthLeft     = 9
	PoseMouthRight    = 10
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftHip       = 23
	PoseRightHip      = 24
	PoseNumLandmarks  = 33
)

// Face mesh landmark indices used for yawn detection.
const (
	FaceUpperLip         = 13
	FaceLowerLip         = 14
	FaceMouthLeftCorner  = 61
	FaceMouthRightCorner = 291
)

// Point represents a normalized landmark coordinate. X and Y are fractions
// of the frame dimensions, Z is relative depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points     [HandNumLandmarks]Point `json:"points"`
	Handedness string                  `json:"handedness"`
	Score      float64                 `json:"score"`
}

// PoseLandmarks represents the 33 body pose landmarks.
type PoseLandmarks struct {
	Points [PoseNumLandmarks]Point `json:"points"`
}

// FaceLandmarks holds a face mesh. Only the mouth indices above are read;
// the mesh may be sparse as long as those indices are present.
type FaceLandmarks struct {
	Points []Point `json:"points"`
}

// Point returns the landmark at index, or a zero point with ok=false when
// the mesh does not carry it.
func (face FaceLandmarks) Point(index int) (Point, bool) {
	if index < 0 || index >= len(face.Points) {
		return Point{}, false
	}
	return face.Points[index], true
}

// Observation is one frame's worth of detector output. Any of the landmark
// sets may be absent; dependent signals then read as false.
type Observation struct {
	Hands       []HandLandmarks `json:"hands"`
	Pose        *PoseLandmarks  `json:"pose"`
	Faces       []FaceLandmarks `json:"faces"`
	FrameWidth  int             `json:"frame_width"`
	FrameHeight int             `json:"frame_height"`
}

func distanceNormalized(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func distancePixels(a, b Point, width, height int) float64 {
	dx := (a.X - b.X) * float64(width)
	dy := (a.Y - b.Y) * float64(height)
	return math.Sqrt(dx*dx + dy*dy)
}
