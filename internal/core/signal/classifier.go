package signal

// Geometry thresholds, tuned against MediaPipe's normalized coordinates.
const (
	palmDepthOffset      = 0.05
	raisedAboveNose      = 0.1
	earReach             = 0.15
	okPinchDistance      = 0.08
	mouthReachPixels     = 50.0
	palmsTogetherReach   = 0.15
	yawnAspectRatio      = 0.6
	forwardHeadOffset    = 0.08
	slouchedNoseDrop     = 0.12
	roundedShoulderDrift = 0.06
	unevenShoulderDiff   = 0.05
)

// PostureIssues is the per-frame breakdown of detected posture problems.
type PostureIssues struct {
	ForwardHead      bool
	Slouched         bool
	RoundedShoulders bool
	UnevenShoulders  bool
}

// Any reports whether at least one posture issue was detected.
func (issues PostureIssues) Any() bool {
	return issues.ForwardHead || issues.Slouched || issues.RoundedShoulders || issues.UnevenShoulders
}

// Describe returns human-readable labels for the detected issues.
func (issues PostureIssues) Describe() []string {
	var labels []string
	if issues.ForwardHead {
		labels = append(labels, "Forward head (tech neck)")
	}
	if issues.Slouched {
		labels = append(labels, "Slouched/hunched")
	}
	if issues.RoundedShoulders {
		labels = append(labels, "Rounded shoulders")
	}
	if issues.UnevenShoulders {
		labels = append(labels, "Uneven shoulders")
	}
	return labels
}

// Snapshot is the full set of named signals derived from one frame.
type Snapshot struct {
	OpenPalm          bool
	BothHandsRaised   bool
	HandsCoveringEars bool
	ClenchedFist      bool
	OKSign            bool
	PeaceSign         bool
	FingersNearMouth  bool
	PalmsTogether     bool
	LookingDown       bool
	Yawn              bool
	BadPosture        bool
	PostureIssues     PostureIssues

	// MouthAspectRatio is the raw yawn measurement of the first face,
	// exposed for status display.
	MouthAspectRatio float64
}

// Classify derives the signal snapshot for one observation. Missing
// landmark sets degrade to false signals rather than errors.
func Classify(obs Observation) Snapshot {
	snap := Snapshot{
		OpenPalm:          checkOpenPalm(obs.Hands),
		ClenchedFist:      checkClenchedFist(obs.Hands),
		OKSign:            checkOKSign(obs.Hands),
		PeaceSign:         checkPeaceSign(obs.Hands),
		PalmsTogether:     checkPalmsTogether(obs.Hands),
		BothHandsRaised:   checkBothHandsRaised(obs.Hands, obs.Pose),
		HandsCoveringEars: checkHandsCoveringEars(obs.Hands, obs.Pose),
		FingersNearMouth:  checkFingersNearMouth(obs.Hands, obs.Pose, obs.FrameWidth, obs.FrameHeight),
		LookingDown:       checkLookingDown(obs.Pose),
	}

	for _, face := range obs.Faces {
		ratio, yawning := checkYawn(face)
		if snap.MouthAspectRatio == 0 {
			snap.MouthAspectRatio = ratio
		}
		if yawning {
			snap.Yawn = true
			snap.MouthAspectRatio = ratio
			break
		}
	}

	snap.PostureIssues = checkPosture(obs.Pose)
	snap.BadPosture = snap.PostureIssues.Any()
	return snap
}

// fingersExtended counts non-thumb fingers whose tip sits above its PIP
// joint. Y grows downward in image coordinates.
func fingersExtended(hand HandLandmarks) int {
	pairs := [4][2]int{
		{HandIndexTip, HandIndexPIP},
		{HandMiddleTip, HandMiddlePIP},
		{HandRingTip, HandRingPIP},
		{HandPinkyTip, HandPinkyPIP},
	}
	extended := 0
	for _, pair := range pairs {
		if hand.Points[pair[0]].Y < hand.Points[pair[1]].Y {
			extended++
		}
	}
	return extended
}

func checkOpenPalm(hands []HandLandmarks) bool {
	for _, hand := range hands {
		if fingersExtended(hand) != 4 {
			continue
		}
		wrist := hand.Points[HandWrist]
		middleTip := hand.Points[HandMiddleTip]
		// Palm facing the camera: fingertips closer than the wrist.
		if middleTip.Z < wrist.Z-palmDepthOffset {
			return true
		}
	}
	return false
}

func checkClenchedFist(hands []HandLandmarks) bool {
	for _, hand := range hands {
		if fingersExtended(hand) == 0 {
			return true
		}
	}
	return false
}

func checkOKSign(hands []HandLandmarks) bool {
	for _, hand := range hands {
		thumbTip := hand.Points[HandThumbTip]
		indexTip := hand.Points[HandIndexTip]
		middleExtended := hand.Points[HandMiddleTip].Y < hand.Points[HandMiddlePIP].Y
		if distanceNormalized(thumbTip, indexTip) < okPinchDistance && middleExtended {
			return true
		}
	}
	return false
}

func checkPeaceSign(hands []HandLandmarks) bool {
	for _, hand := range hands {
		indexUp := hand.Points[HandIndexTip].Y < hand.Points[HandIndexPIP].Y
		middleUp := hand.Points[HandMiddleTip].Y < hand.Points[HandMiddlePIP].Y
		ringDown := hand.Points[HandRingTip].Y > hand.Points[HandRingPIP].Y
		if indexUp && middleUp && ringDown {
			return true
		}
	}
	return false
}

func checkPalmsTogether(hands []HandLandmarks) bool {
	if len(hands) < 2 {
		return false
	}
	return distanceNormalized(hands[0].Points[HandWrist], hands[1].Points[HandWrist]) < palmsTogetherReach
}

func checkBothHandsRaised(hands []HandLandmarks, pose *PoseLandmarks) bool {
	if len(hands) < 2 || pose == nil {
		return false
	}
	nose := pose.Points[PoseNose]
	raised := 0
	for _, hand := range hands {
		if hand.Points[HandWrist].Y < nose.Y-raisedAboveNose {
			raised++
		}
	}
	return raised >= 2
}

func checkHandsCoveringEars(hands []HandLandmarks, pose *PoseLandmarks) bool {
	if len(hands) < 2 || pose == nil {
		return false
	}
	leftEar := pose.Points[PoseLeftEar]
	rightEar := pose.Points[PoseRightEar]
	near := 0
	for _, hand := range hands {
		wrist := hand.Points[HandWrist]
		if distanceNormalized(wrist, leftEar) < earReach || distanceNormalized(wrist, rightEar) < earReach {
			near++
		}
	}
	return near >= 2
}

func checkFingersNearMouth(hands []HandLandmarks, pose *PoseLandmarks, width, height int) bool {
	if len(hands) == 0 || pose == nil || width <= 0 || height <= 0 {
		return false
	}
	mouthLeft := pose.Points[PoseMouthLeft]
	mouthRight := pose.Points[PoseMouthRight]
	for _, hand := range hands {
		for _, tip := range [2]int{HandIndexTip, HandThumbTip} {
			finger := hand.Points[tip]
			if distancePixels(finger, mouthLeft, width, height) < mouthReachPixels ||
				distancePixels(finger, mouthRight, width, height) < mouthReachPixels {
				return true
			}
		}
	}
	return false
}

func checkLookingDown(pose *PoseLandmarks) bool {
	if pose == nil {
		return false
	}
	nose := pose.Points[PoseNose]
	shoulderY := (pose.Points[PoseLeftShoulder].Y + pose.Points[PoseRightShoulder].Y) / 2
	// Head dropped below the shoulder line.
	return nose.Y > shoulderY
}

// checkYawn computes the mouth aspect ratio: vertical lip opening over
// mouth width. Ratios above yawnAspectRatio read as a yawn.
func checkYawn(face FaceLandmarks) (float64, bool) {
	upper, ok1 := face.Point(FaceUpperLip)
	lower, ok2 := face.Point(FaceLowerLip)
	left, ok3 := face.Point(FaceMouthLeftCorner)
	right, ok4 := face.Point(FaceMouthRightCorner)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}

	horizontal := distanceNormalized(left, right)
	if horizontal == 0 {
		return 0, false
	}
	ratio := distanceNormalized(upper, lower) / horizontal
	return ratio, ratio > yawnAspectRatio
}

func checkPosture(pose *PoseLandmarks) PostureIssues {
	if pose == nil {
		return PostureIssues{}
	}

	nose := pose.Points[PoseNose]
	leftShoulder := pose.Points[PoseLeftShoulder]
	rightShoulder := pose.Points[PoseRightShoulder]
	leftEar := pose.Points[PoseLeftEar]
	rightEar := pose.Points[PoseRightEar]
	leftHip := pose.Points[PoseLeftHip]
	rightHip := pose.Points[PoseRightHip]

	shoulderMidX := (leftShoulder.X + rightShoulder.X) / 2
	shoulderMidY := (leftShoulder.Y + rightShoulder.Y) / 2
	earMidX := (leftEar.X + rightEar.X) / 2
	hipMidX := (leftHip.X + rightHip.X) / 2

	return PostureIssues{
		ForwardHead:      abs(earMidX-shoulderMidX) > forwardHeadOffset,
		Slouched:         nose.Y > shoulderMidY+slouchedNoseDrop,
		RoundedShoulders: abs(shoulderMidX-hipMidX) > roundedShoulderDrift,
		UnevenShoulders:  abs(leftShoulder.Y-rightShoulder.Y) > unevenShoulderDiff,
	}
}

func abs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}
