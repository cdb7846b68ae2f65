package signal

import "testing"

// neutralPose is an upright, centered subject: no posture issues, head
// above the shoulder line.
func neutralPose() *PoseLandmarks {
	pose := &PoseLandmarks{}
	pose.Points[PoseNose] = Point{X: 0.5, Y: 0.3}
	pose.Points[PoseLeftEar] = Point{X: 0.45, Y: 0.3}
	pose.Points[PoseRightEar] = Point{X: 0.55, Y: 0.3}
	pose.Points[PoseMouthLeft] = Point{X: 0.48, Y: 0.35}
	pose.Points[PoseMouthRight] = Point{X: 0.52, Y: 0.35}
	pose.Points[PoseLeftShoulder] = Point{X: 0.4, Y: 0.5}
	pose.Points[PoseRightShoulder] = Point{X: 0.6, Y: 0.5}
	pose.Points[PoseLeftHip] = Point{X: 0.42, Y: 0.9}
	pose.Points[PoseRightHip] = Point{X: 0.58, Y: 0.9}
	return pose
}

// openPalmHand has all four non-thumb fingers extended with the
// fingertips pushed toward the camera.
func openPalmHand() HandLandmarks {
	hand := HandLandmarks{}
	hand.Points[HandWrist] = Point{X: 0.5, Y: 0.8}
	hand.Points[HandThumbTip] = Point{X: 0.4, Y: 0.65}
	hand.Points[HandIndexPIP] = Point{X: 0.46, Y: 0.6}
	hand.Points[HandIndexTip] = Point{X: 0.46, Y: 0.5}
	hand.Points[HandMiddlePIP] = Point{X: 0.5, Y: 0.6}
	hand.Points[HandMiddleTip] = Point{X: 0.5, Y: 0.45, Z: -0.1}
	hand.Points[HandRingPIP] = Point{X: 0.54, Y: 0.6}
	hand.Points[HandRingTip] = Point{X: 0.54, Y: 0.5}
	hand.Points[HandPinkyPIP] = Point{X: 0.58, Y: 0.62}
	hand.Points[HandPinkyTip] = Point{X: 0.58, Y: 0.52}
	return hand
}

func fistHand() HandLandmarks {
	hand := HandLandmarks{}
	hand.Points[HandWrist] = Point{X: 0.5, Y: 0.8}
	hand.Points[HandThumbTip] = Point{X: 0.44, Y: 0.7}
	hand.Points[HandIndexPIP] = Point{X: 0.46, Y: 0.6}
	hand.Points[HandIndexTip] = Point{X: 0.46, Y: 0.68}
	hand.Points[HandMiddlePIP] = Point{X: 0.5, Y: 0.6}
	hand.Points[HandMiddleTip] = Point{X: 0.5, Y: 0.68}
	hand.Points[HandRingPIP] = Point{X: 0.54, Y: 0.6}
	hand.Points[HandRingTip] = Point{X: 0.54, Y: 0.68}
	hand.Points[HandPinkyPIP] = Point{X: 0.58, Y: 0.6}
	hand.Points[HandPinkyTip] = Point{X: 0.58, Y: 0.68}
	return hand
}

func okHand() HandLandmarks {
	hand := HandLandmarks{}
	hand.Points[HandWrist] = Point{X: 0.5, Y: 0.8}
	hand.Points[HandThumbTip] = Point{X: 0.5, Y: 0.6}
	hand.Points[HandIndexPIP] = Point{X: 0.52, Y: 0.6}
	hand.Points[HandIndexTip] = Point{X: 0.52, Y: 0.63}
	hand.Points[HandMiddlePIP] = Point{X: 0.55, Y: 0.6}
	hand.Points[HandMiddleTip] = Point{X: 0.55, Y: 0.5}
	hand.Points[HandRingPIP] = Point{X: 0.58, Y: 0.6}
	hand.Points[HandRingTip] = Point{X: 0.58, Y: 0.52}
	hand.Points[HandPinkyPIP] = Point{X: 0.61, Y: 0.6}
	hand.Points[HandPinkyTip] = Point{X: 0.61, Y: 0.66}
	return hand
}

func peaceHand() HandLandmarks {
	hand := HandLandmarks{}
	hand.Points[HandWrist] = Point{X: 0.5, Y: 0.8}
	hand.Points[HandThumbTip] = Point{X: 0.42, Y: 0.68}
	hand.Points[HandIndexPIP] = Point{X: 0.46, Y: 0.6}
	hand.Points[HandIndexTip] = Point{X: 0.46, Y: 0.5}
	hand.Points[HandMiddlePIP] = Point{X: 0.5, Y: 0.6}
	hand.Points[HandMiddleTip] = Point{X: 0.5, Y: 0.48}
	hand.Points[HandRingPIP] = Point{X: 0.54, Y: 0.6}
	hand.Points[HandRingTip] = Point{X: 0.54, Y: 0.68}
	hand.Points[HandPinkyPIP] = Point{X: 0.58, Y: 0.6}
	hand.Points[HandPinkyTip] = Point{X: 0.58, Y: 0.68}
	return hand
}

func yawnFace(vertical float64) FaceLandmarks {
	face := FaceLandmarks{Points: make([]Point, FaceMouthRightCorner+1)}
	face.Points[FaceUpperLip] = Point{X: 0.5, Y: 0.4}
	face.Points[FaceLowerLip] = Point{X: 0.5, Y: 0.4 + vertical}
	face.Points[FaceMouthLeftCorner] = Point{X: 0.45, Y: 0.44}
	face.Points[FaceMouthRightCorner] = Point{X: 0.55, Y: 0.44}
	return face
}

func TestClassifyHandShapes(t *testing.T) {
	tests := []struct {
		name string
		hand HandLandmarks
		want Snapshot
	}{
		{"open palm", openPalmHand(), Snapshot{OpenPalm: true}},
		{"clenched fist", fistHand(), Snapshot{ClenchedFist: true}},
		{"ok sign", okHand(), Snapshot{OKSign: true}},
		{"peace sign", peaceHand(), Snapshot{PeaceSign: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := Classify(Observation{Hands: []HandLandmarks{tc.hand}})
			if snap.OpenPalm != tc.want.OpenPalm {
				t.Errorf("OpenPalm = %v, want %v", snap.OpenPalm, tc.want.OpenPalm)
			}
			if snap.ClenchedFist != tc.want.ClenchedFist {
				t.Errorf("ClenchedFist = %v, want %v", snap.ClenchedFist, tc.want.ClenchedFist)
			}
			if snap.OKSign != tc.want.OKSign {
				t.Errorf("OKSign = %v, want %v", snap.OKSign, tc.want.OKSign)
			}
			if snap.PeaceSign != tc.want.PeaceSign {
				t.Errorf("PeaceSign = %v, want %v", snap.PeaceSign, tc.want.PeaceSign)
			}
		})
	}
}

func TestClassifyOpenPalmRequiresFacingCamera(t *testing.T) {
	hand := openPalmHand()
	// Flatten fingertip depth: extended fingers but palm side-on.
	hand.Points[HandMiddleTip].Z = 0
	snap := Classify(Observation{Hands: []HandLandmarks{hand}})
	if snap.OpenPalm {
		t.Error("open palm detected with palm not facing the camera")
	}
}

func TestClassifyPalmsTogether(t *testing.T) {
	left := openPalmHand()
	right := openPalmHand()
	right.Points[HandWrist] = Point{X: 0.56, Y: 0.8}
	snap := Classify(Observation{Hands: []HandLandmarks{left, right}})
	if !snap.PalmsTogether {
		t.Error("palms together not detected with wrists adjacent")
	}

	right.Points[HandWrist] = Point{X: 0.9, Y: 0.8}
	snap = Classify(Observation{Hands: []HandLandmarks{left, right}})
	if snap.PalmsTogether {
		t.Error("palms together detected with wrists far apart")
	}
}

func TestClassifyBothHandsRaised(t *testing.T) {
	left := openPalmHand()
	right := openPalmHand()
	left.Points[HandWrist].Y = 0.1
	right.Points[HandWrist].Y = 0.12

	snap := Classify(Observation{Hands: []HandLandmarks{left, right}, Pose: neutralPose()})
	if !snap.BothHandsRaised {
		t.Error("both hands raised not detected with wrists above the nose")
	}

	// Without pose landmarks there is no nose reference.
	snap = Classify(Observation{Hands: []HandLandmarks{left, right}})
	if snap.BothHandsRaised {
		t.Error("both hands raised detected without pose landmarks")
	}
}

func TestClassifyHandsCoveringEars(t *testing.T) {
	left := fistHand()
	right := fistHand()
	left.Points[HandWrist] = Point{X: 0.44, Y: 0.31}
	right.Points[HandWrist] = Point{X: 0.56, Y: 0.31}

	snap := Classify(Observation{Hands: []HandLandmarks{left, right}, Pose: neutralPose()})
	if !snap.HandsCoveringEars {
		t.Error("hands covering ears not detected with wrists at the ears")
	}
}

func TestClassifyFingersNearMouth(t *testing.T) {
	hand := fistHand()
	hand.Points[HandIndexTip] = Point{X: 0.48, Y: 0.36}

	obs := Observation{
		Hands:       []HandLandmarks{hand},
		Pose:        neutralPose(),
		FrameWidth:  640,
		FrameHeight: 480,
	}
	if snap := Classify(obs); !snap.FingersNearMouth {
		t.Error("fingers near mouth not detected with index tip at the lips")
	}

	// The same normalized offset means nothing without frame dimensions.
	obs.FrameWidth = 0
	obs.FrameHeight = 0
	if snap := Classify(obs); snap.FingersNearMouth {
		t.Error("fingers near mouth detected without frame dimensions")
	}
}

func TestClassifyYawn(t *testing.T) {
	tests := []struct {
		name     string
		vertical float64
		want     bool
	}{
		{"mouth closed", 0.02, false},
		{"mouth open slightly", 0.05, false},
		{"yawning", 0.08, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := Classify(Observation{Faces: []FaceLandmarks{yawnFace(tc.vertical)}})
			if snap.Yawn != tc.want {
				t.Errorf("Yawn = %v, want %v (ratio %.2f)", snap.Yawn, tc.want, snap.MouthAspectRatio)
			}
		})
	}
}

func TestClassifyYawnShortFaceMesh(t *testing.T) {
	face := FaceLandmarks{Points: make([]Point, 20)}
	snap := Classify(Observation{Faces: []FaceLandmarks{face}})
	if snap.Yawn {
		t.Error("yawn detected on a truncated face mesh")
	}
}

func TestClassifyPosture(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PoseLandmarks)
		want   PostureIssues
	}{
		{"(upright)", func(*PoseLandmarks) {}, PostureIssues{}},
		{"forward head", func(pose *PoseLandmarks) {
			pose.Points[PoseLeftEar].X += 0.1
			pose.Points[PoseRightEar].X += 0.1
		}, PostureIssues{ForwardHead: true}},
		{"slouched", func(pose *PoseLandmarks) {
			pose.Points[PoseNose].Y = 0.65
		}, PostureIssues{Slouched: true}},
		{"rounded shoulders", func(pose *PoseLandmarks) {
			pose.Points[PoseLeftHip].X -= 0.08
			pose.Points[PoseRightHip].X -= 0.08
		}, PostureIssues{RoundedShoulders: true}},
		{"uneven shoulders", func(pose *PoseLandmarks) {
			pose.Points[PoseLeftShoulder].Y += 0.06
		}, PostureIssues{UnevenShoulders: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pose := neutralPose()
			tc.mutate(pose)
			snap := Classify(Observation{Pose: pose})
			if snap.PostureIssues != tc.want {
				t.Errorf("PostureIssues = %+v, want %+v", snap.PostureIssues, tc.want)
			}
			if snap.BadPosture != tc.want.Any() {
				t.Errorf("BadPosture = %v, want %v", snap.BadPosture, tc.want.Any())
			}
		})
	}
}

func TestClassifyLookingDown(t *testing.T) {
	pose := neutralPose()
	if snap := Classify(Observation{Pose: pose}); snap.LookingDown {
		t.Error("looking down detected on an upright pose")
	}

	pose.Points[PoseNose].Y = 0.55
	if snap := Classify(Observation{Pose: pose}); !snap.LookingDown {
		t.Error("looking down not detected with the nose below the shoulder line")
	}
}

func TestClassifyEmptyObservation(t *testing.T) {
	snap := Classify(Observation{})
	if snap != (Snapshot{}) {
		t.Errorf("empty observation produced signals: %+v", snap)
	}
}
