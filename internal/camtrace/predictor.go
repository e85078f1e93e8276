package camtrace

import "vvstream/internal/model"

// PosePredictor is the viewport-prediction contract: add an observed pose,
// then ask for the predicted one. Only LastValue is required by the core;
// the interface leaves room for trajectory-based predictors.
type PosePredictor interface {
	Add(model.CameraPosition)
	Predict() (model.CameraPosition, bool)
}

// LastPose predicts the most recently observed camera pose.
type LastPose struct {
	last model.CameraPosition
	has  bool
}

// NewLastPose returns a LastPose predictor with no history.
func NewLastPose() *LastPose { return &LastPose{} }

func (p *LastPose) Add(pose model.CameraPosition) {
	p.last = pose
	p.has = true
}

func (p *LastPose) Predict() (model.CameraPosition, bool) {
	return p.last, p.has
}
